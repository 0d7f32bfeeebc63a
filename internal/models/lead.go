package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	LeadStatutEnCours  = "EN_COURS"
	LeadUrgenceMoyenne = "MOYENNE"
)

type Lead struct {
	gorm.Model

	AgentID      uint   `gorm:"not null;index"`
	Nom          string `gorm:"not null"`
	Prenom       string `gorm:"not null"`
	Email        string
	Telephone    string
	TypeBien     string         `gorm:"not null"`
	BudgetMaxEur int            `gorm:"not null"`
	Villes       datatypes.JSON `gorm:"not null"`
	SurfaceMin   *int
	SurfaceMax   *int
	NbPiecesMin  *int
	NbPiecesMax  *int
	Etat         string
	Urgence      string `gorm:"not null;default:MOYENNE"`
	Statut       string `gorm:"not null;default:EN_COURS"`
	Notes        string

	// Relationships
	Agent         User          `gorm:"foreignKey:AgentID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	BiensProposes []BienPropose `gorm:"foreignKey:LeadID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
