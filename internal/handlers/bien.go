package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sigma-matching/sigma/db"
	"github.com/sigma-matching/sigma/internal/models"
	"github.com/sigma-matching/sigma/internal/services"
	"github.com/sigma-matching/sigma/internal/types"
	"gorm.io/gorm"
)

type UpdateBienStatutRequest struct {
	Statut string `json:"statut" binding:"required"`
}

func ListBiensForLead(ctx *gin.Context) {
	user, ok := requireUser(ctx)

	if !ok {
		return
	}

	lead, err := findScopedLead(user, ctx.Param("lead_id"))

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		} else {
			log.Printf("Failed to retrieve lead: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var biens []models.BienPropose

	// Unscored listings sort below every scored one.
	err = db.DB.Where("lead_id = ?", lead.ID).
		Order("score_match DESC NULLS LAST").
		Find(&biens).Error

	if err != nil {
		log.Printf("Failed to retrieve biens: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]types.BienResponse, 0, len(biens))

	for _, bien := range biens {
		response = append(response, types.NewBienResponse(bien))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"biens": response,
		"total": len(response),
	})
}

func UpdateBienStatut(ctx *gin.Context) {
	user, ok := requireUser(ctx)

	if !ok {
		return
	}

	var req UpdateBienStatutRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bienID := ctx.Param("bien_id")

	var bien models.BienPropose
	var err error

	if user.Role == models.RoleAdmin {
		err = db.DB.Where("id = ?", bienID).First(&bien).Error
	} else {
		err = db.DB.
			Joins("JOIN leads ON leads.id = biens_proposes.lead_id").
			Where("biens_proposes.id = ? AND leads.agent_id = ?", bienID, user.ID).
			First(&bien).Error
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Bien not found"})
		} else {
			log.Printf("Failed to retrieve bien: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if err := db.DB.Model(&bien).Update("statut", req.Statut).Error; err != nil {
		log.Printf("Failed to update bien statut: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	services.RecordAction(db.DB, user.ID, services.ActionBienUpdateStatut, map[string]interface{}{"bien_id": bien.ID, "statut": req.Statut}, ctx.ClientIP(), ctx.Request.UserAgent())

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Statut updated successfully",
		"bien":    types.NewBienResponse(bien),
	})
}
