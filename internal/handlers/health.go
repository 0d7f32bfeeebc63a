package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sigma-matching/sigma/db"
)

const Version = "1.0.0"

// HealthCheck is a liveness probe: one round-trip query against the store.
func HealthCheck(ctx *gin.Context) {
	var result int

	if err := db.DB.Raw("SELECT 1").Scan(&result).Error; err != nil {
		log.Printf("Health check failed: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"status":    "unhealthy",
			"error":     err.Error(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"database":  "disconnected",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
		"database":  "connected",
		"components": gin.H{
			"api":      "operational",
			"database": "connected",
			"auth":     "operational",
		},
	})
}
