package services

import (
	"time"

	"github.com/sigma-matching/sigma/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IngestBien is the write path for listings coming out of the scraping
// pipeline. Re-ingesting a listing upserts on (source, source_id): the mutable
// listing fields are refreshed in place, never duplicated.
func IngestBien(gdb *gorm.DB, bien *models.BienPropose) error {
	if bien.DateDetection.IsZero() {
		bien.DateDetection = time.Now().UTC()
	}

	if bien.Statut == "" {
		bien.Statut = models.BienStatutNouveau
	}

	return gdb.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "source"}, {Name: "source_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"titre", "url", "prix_eur", "ville", "code_postal", "surface_m2",
			"type_bien", "nb_pieces", "etat", "description", "date_publication",
			"images", "contact_type", "score_match", "coordonnees_gps",
			"caracteristiques", "updated_at",
		}),
	}).Create(bien).Error
}
