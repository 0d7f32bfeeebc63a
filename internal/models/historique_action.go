package models

import (
	"time"

	"gorm.io/datatypes"
)

// HistoriqueAction is the append-only audit trail. No route reads it back.
type HistoriqueAction struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	Action    string `gorm:"not null"`
	Details   datatypes.JSON
	IPAddress string
	UserAgent string
	CreatedAt time.Time

	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

func (HistoriqueAction) TableName() string {
	return "historique_actions"
}
