package handlers

import (
	"encoding/json"
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

type CreateLeadRequest struct {
	Nom          string   `json:"nom" binding:"required"`
	Prenom       string   `json:"prenom" binding:"required"`
	Email        string   `json:"email"`
	Telephone    string   `json:"telephone"`
	TypeBien     string   `json:"type_bien" binding:"required"`
	BudgetMaxEur int      `json:"budget_max_eur" binding:"required,gt=0"`
	Villes       []string `json:"villes" binding:"required,min=1"`
	SurfaceMin   *int     `json:"surface_min"`
	SurfaceMax   *int     `json:"surface_max"`
	NbPiecesMin  *int     `json:"nb_pieces_min"`
	NbPiecesMax  *int     `json:"nb_pieces_max"`
	Etat         string   `json:"etat"`
	Urgence      string   `json:"urgence"`
	Notes        string   `json:"notes"`
}

// UpdateLeadRequest is the allow-list for partial updates. Identifiers and
// timestamps are never client-settable.
type UpdateLeadRequest struct {
	Nom          *string   `json:"nom"`
	Prenom       *string   `json:"prenom"`
	Email        *string   `json:"email"`
	Telephone    *string   `json:"telephone"`
	TypeBien     *string   `json:"type_bien"`
	BudgetMaxEur *int      `json:"budget_max_eur" binding:"omitempty,gt=0"`
	Villes       *[]string `json:"villes" binding:"omitempty,min=1"`
	SurfaceMin   *int      `json:"surface_min"`
	SurfaceMax   *int      `json:"surface_max"`
	NbPiecesMin  *int      `json:"nb_pieces_min"`
	NbPiecesMax  *int      `json:"nb_pieces_max"`
	Etat         *string   `json:"etat"`
	Urgence      *string   `json:"urgence"`
	Statut       *string   `json:"statut"`
	Notes        *string   `json:"notes"`
}

func ListLeads(ctx *gin.Context) {
	user, ok := requireUser(ctx)

	if !ok {
		return
	}

	query := db.DB

	if user.Role != models.RoleAdmin {
		query = query.Where("agent_id = ?", user.ID)
	}

	var leads []models.Lead

	if err := query.Find(&leads).Error; err != nil {
		log.Printf("Failed to retrieve leads: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]types.LeadResponse, 0, len(leads))

	for _, lead := range leads {
		response = append(response, types.NewLeadResponse(lead))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"leads": response,
		"total": len(response),
	})
}

func CreateLead(ctx *gin.Context) {
	user, ok := requireUser(ctx)

	if !ok {
		return
	}

	var req CreateLeadRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	villes, err := json.Marshal(req.Villes)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid villes format"})
		return
	}

	urgence := req.Urgence

	if urgence == "" {
		urgence = models.LeadUrgenceMoyenne
	}

	lead := models.Lead{
		AgentID:      user.ID,
		Nom:          req.Nom,
		Prenom:       req.Prenom,
		Email:        req.Email,
		Telephone:    req.Telephone,
		TypeBien:     req.TypeBien,
		BudgetMaxEur: req.BudgetMaxEur,
		Villes:       villes,
		SurfaceMin:   req.SurfaceMin,
		SurfaceMax:   req.SurfaceMax,
		NbPiecesMin:  req.NbPiecesMin,
		NbPiecesMax:  req.NbPiecesMax,
		Etat:         req.Etat,
		Urgence:      urgence,
		Statut:       models.LeadStatutEnCours,
		Notes:        req.Notes,
	}

	if err := db.DB.Create(&lead).Error; err != nil {
		log.Printf("Failed to create lead: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Fire-and-forget: a workflow failure never surfaces to the caller.
	if err := services.TriggerWorkflow("lead-created", types.NewLeadResponse(lead)); err != nil {
		log.Printf("Failed to trigger lead-created workflow: %v", err)
	}

	services.RecordAction(db.DB, user.ID, services.ActionLeadCreate, map[string]interface{}{"lead_id": lead.ID}, ctx.ClientIP(), ctx.Request.UserAgent())

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Lead created successfully",
		"lead":    types.NewLeadResponse(lead),
	})
}

func GetLead(ctx *gin.Context) {
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

	ctx.JSON(http.StatusOK, gin.H{"lead": types.NewLeadResponse(lead)})
}

func UpdateLead(ctx *gin.Context) {
	user, ok := requireUser(ctx)

	if !ok {
		return
	}

	var req UpdateLeadRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
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

	updates := make(map[string]interface{})

	if req.Nom != nil {
		updates["nom"] = *req.Nom
	}

	if req.Prenom != nil {
		updates["prenom"] = *req.Prenom
	}

	if req.Email != nil {
		updates["email"] = *req.Email
	}

	if req.Telephone != nil {
		updates["telephone"] = *req.Telephone
	}

	if req.TypeBien != nil {
		updates["type_bien"] = *req.TypeBien
	}

	if req.BudgetMaxEur != nil {
		updates["budget_max_eur"] = *req.BudgetMaxEur
	}

	if req.Villes != nil {
		villes, err := json.Marshal(*req.Villes)

		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid villes format"})
			return
		}

		updates["villes"] = villes
	}

	if req.SurfaceMin != nil {
		updates["surface_min"] = *req.SurfaceMin
	}

	if req.SurfaceMax != nil {
		updates["surface_max"] = *req.SurfaceMax
	}

	if req.NbPiecesMin != nil {
		updates["nb_pieces_min"] = *req.NbPiecesMin
	}

	if req.NbPiecesMax != nil {
		updates["nb_pieces_max"] = *req.NbPiecesMax
	}

	if req.Etat != nil {
		updates["etat"] = *req.Etat
	}

	if req.Urgence != nil {
		updates["urgence"] = *req.Urgence
	}

	if req.Statut != nil {
		updates["statut"] = *req.Statut
	}

	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&lead).Updates(updates).Error; err != nil {
			log.Printf("Failed to update lead: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
	}

	if err := db.DB.First(&lead, lead.ID).Error; err != nil {
		log.Printf("Failed to refresh lead: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	services.RecordAction(db.DB, user.ID, services.ActionLeadUpdate, map[string]interface{}{"lead_id": lead.ID}, ctx.ClientIP(), ctx.Request.UserAgent())

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Lead updated successfully",
		"lead":    types.NewLeadResponse(lead),
	})
}
