package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const BienStatutNouveau = "NOUVEAU"

// BienPropose is an external listing matched against a lead. Rows are written
// by the ingestion pipeline; (source, source_id) is the natural key that keeps
// the same listing from being ingested twice.
type BienPropose struct {
	gorm.Model

	LeadID           uint   `gorm:"not null;index"`
	Source           string `gorm:"not null;uniqueIndex:idx_biens_source_source_id"`
	SourceID         string `gorm:"not null;uniqueIndex:idx_biens_source_source_id"`
	Titre            string `gorm:"not null"`
	URL              string `gorm:"not null"`
	PrixEur          int    `gorm:"not null"`
	Ville            string
	CodePostal       string
	SurfaceM2        *int
	TypeBien         string
	NbPieces         *int
	Etat             string
	Description      string
	DatePublication  *time.Time
	DateDetection    time.Time `gorm:"not null"`
	Images           datatypes.JSON
	ContactType      string
	ScoreMatch       *int
	Statut           string         `gorm:"not null;default:NOUVEAU"`
	CoordonneesGPS   datatypes.JSON `gorm:"column:coordonnees_gps"`
	Caracteristiques datatypes.JSON

	// Relationships
	Lead Lead `gorm:"foreignKey:LeadID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

func (BienPropose) TableName() string {
	return "biens_proposes"
}
