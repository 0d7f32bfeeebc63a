package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sigma-matching/sigma/db"
	"github.com/sigma-matching/sigma/internal/models"
	"github.com/sigma-matching/sigma/internal/types"
)

type AdminStatsResponse struct {
	TotalUsers  int64 `json:"total_users"`
	ActiveUsers int64 `json:"active_users"`
	TotalLeads  int64 `json:"total_leads"`
	ActiveLeads int64 `json:"active_leads"`
	TotalBiens  int64 `json:"total_biens"`
	BiensToday  int64 `json:"biens_today"`
}

func AdminStats(ctx *gin.Context) {
	var stats AdminStatsResponse

	// Detected-today counts from UTC midnight, server clock.
	startOfDay := time.Now().UTC().Truncate(24 * time.Hour)

	err := db.DB.Model(&models.User{}).Count(&stats.TotalUsers).Error

	if err == nil {
		err = db.DB.Model(&models.User{}).Where("is_active = ?", true).Count(&stats.ActiveUsers).Error
	}

	if err == nil {
		err = db.DB.Model(&models.Lead{}).Count(&stats.TotalLeads).Error
	}

	if err == nil {
		err = db.DB.Model(&models.Lead{}).Where("statut = ?", models.LeadStatutEnCours).Count(&stats.ActiveLeads).Error
	}

	if err == nil {
		err = db.DB.Model(&models.BienPropose{}).Count(&stats.TotalBiens).Error
	}

	if err == nil {
		err = db.DB.Model(&models.BienPropose{}).Where("date_detection >= ?", startOfDay).Count(&stats.BiensToday).Error
	}

	if err != nil {
		log.Printf("Failed to compute admin stats: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// ListUsers returns every account, inactive ones included.
func ListUsers(ctx *gin.Context) {
	var users []models.User

	if err := db.DB.Find(&users).Error; err != nil {
		log.Printf("Failed to retrieve users: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]types.UserResponse, 0, len(users))

	for _, user := range users {
		response = append(response, types.NewUserResponse(user))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"users": response,
		"total": len(response),
	})
}
