package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sigma-matching/sigma/db"
	"github.com/sigma-matching/sigma/internal/models"
	"github.com/sigma-matching/sigma/internal/utils"
	"gorm.io/gorm"
)

// requireUser resolves the authenticated caller to a full user row and writes
// the error response itself when that fails.
func requireUser(ctx *gin.Context) (models.User, bool) {
	user, err := utils.GetCurrentUser(ctx)

	if err == nil {
		return user, true
	}

	if errors.Is(err, utils.ErrNotAuthenticated) || errors.Is(err, gorm.ErrRecordNotFound) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
	} else {
		log.Printf("Database error when resolving current user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}

	return models.User{}, false
}

// currentUserOr404 is requireUser for identity routes, where a token whose
// subject no longer exists is a missing resource rather than a bad credential.
func currentUserOr404(ctx *gin.Context) (models.User, bool) {
	user, err := utils.GetCurrentUser(ctx)

	if err == nil {
		return user, true
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	} else if errors.Is(err, utils.ErrNotAuthenticated) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
	} else {
		log.Printf("Database error when resolving current user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}

	return models.User{}, false
}

// findScopedLead fetches a lead within the caller's scope. Agents only see
// their own leads; admins see everything. An out-of-scope row surfaces as
// gorm.ErrRecordNotFound so callers answer 404, never 403.
func findScopedLead(user models.User, leadID string) (models.Lead, error) {
	query := db.DB

	if user.Role != models.RoleAdmin {
		query = query.Where("agent_id = ?", user.ID)
	}

	var lead models.Lead
	err := query.Where("id = ?", leadID).First(&lead).Error
	return lead, err
}
