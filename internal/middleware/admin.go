package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sigma-matching/sigma/internal/models"
	"github.com/sigma-matching/sigma/internal/utils"
	"gorm.io/gorm"
)

// AdminRequired gates admin-only routes. Must run after AuthMiddleware.
func AdminRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, err := utils.GetCurrentUser(ctx)

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, utils.ErrNotAuthenticated) {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
				return
			}
			log.Printf("Database error when resolving admin caller: %v", err)
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		if user.Role != models.RoleAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		ctx.Next()
	}
}
