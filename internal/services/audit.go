package services

import (
	"encoding/json"
	"log"

	"github.com/sigma-matching/sigma/internal/models"
	"gorm.io/gorm"
)

const (
	ActionUserRegister     = "USER_REGISTER"
	ActionUserLogin        = "USER_LOGIN"
	ActionGoogleLogin      = "GOOGLE_LOGIN"
	ActionLeadCreate       = "LEAD_CREATE"
	ActionLeadUpdate       = "LEAD_UPDATE"
	ActionBienUpdateStatut = "BIEN_UPDATE_STATUT"
)

// RecordAction appends a row to the action history. Best-effort: a failed
// audit write is logged and never invalidates the primary operation.
func RecordAction(gdb *gorm.DB, userID uint, action string, details map[string]interface{}, ipAddress, userAgent string) {
	entry := models.HistoriqueAction{
		UserID:    userID,
		Action:    action,
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}

	if details != nil {
		payload, err := json.Marshal(details)

		if err != nil {
			log.Printf("Failed to marshal audit details for %s: %v", action, err)
		} else {
			entry.Details = payload
		}
	}

	if err := gdb.Create(&entry).Error; err != nil {
		log.Printf("Failed to record action %s: %v", action, err)
	}
}
