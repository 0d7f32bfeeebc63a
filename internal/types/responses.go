package types

import (
	"time"

	"github.com/sigma-matching/sigma/internal/models"
	"gorm.io/datatypes"
)

// Flat wire records matching the contract the frontend consumes.

type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type LeadResponse struct {
	ID           uint           `json:"id"`
	AgentID      uint           `json:"agent_id"`
	Nom          string         `json:"nom"`
	Prenom       string         `json:"prenom"`
	Email        string         `json:"email"`
	Telephone    string         `json:"telephone"`
	TypeBien     string         `json:"type_bien"`
	BudgetMaxEur int            `json:"budget_max_eur"`
	Villes       datatypes.JSON `json:"villes"`
	SurfaceMin   *int           `json:"surface_min"`
	SurfaceMax   *int           `json:"surface_max"`
	NbPiecesMin  *int           `json:"nb_pieces_min"`
	NbPiecesMax  *int           `json:"nb_pieces_max"`
	Etat         string         `json:"etat"`
	Urgence      string         `json:"urgence"`
	Statut       string         `json:"statut"`
	Notes        string         `json:"notes"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

type BienResponse struct {
	ID               uint           `json:"id"`
	LeadID           uint           `json:"lead_id"`
	Source           string         `json:"source"`
	SourceID         string         `json:"source_id"`
	Titre            string         `json:"titre"`
	URL              string         `json:"url"`
	PrixEur          int            `json:"prix_eur"`
	Ville            string         `json:"ville"`
	CodePostal       string         `json:"code_postal"`
	SurfaceM2        *int           `json:"surface_m2"`
	TypeBien         string         `json:"type_bien"`
	NbPieces         *int           `json:"nb_pieces"`
	Etat             string         `json:"etat"`
	Description      string         `json:"description"`
	DatePublication  *time.Time     `json:"date_publication"`
	DateDetection    time.Time      `json:"date_detection"`
	Images           datatypes.JSON `json:"images"`
	ContactType      string         `json:"contact_type"`
	ScoreMatch       *int           `json:"score_match"`
	Statut           string         `json:"statut"`
	CoordonneesGPS   datatypes.JSON `json:"coordonnees_gps"`
	Caracteristiques datatypes.JSON `json:"caracteristiques"`
}

func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}

func NewLeadResponse(lead models.Lead) LeadResponse {
	return LeadResponse{
		ID:           lead.ID,
		AgentID:      lead.AgentID,
		Nom:          lead.Nom,
		Prenom:       lead.Prenom,
		Email:        lead.Email,
		Telephone:    lead.Telephone,
		TypeBien:     lead.TypeBien,
		BudgetMaxEur: lead.BudgetMaxEur,
		Villes:       lead.Villes,
		SurfaceMin:   lead.SurfaceMin,
		SurfaceMax:   lead.SurfaceMax,
		NbPiecesMin:  lead.NbPiecesMin,
		NbPiecesMax:  lead.NbPiecesMax,
		Etat:         lead.Etat,
		Urgence:      lead.Urgence,
		Statut:       lead.Statut,
		Notes:        lead.Notes,
		CreatedAt:    lead.CreatedAt,
		UpdatedAt:    lead.UpdatedAt,
	}
}

func NewBienResponse(bien models.BienPropose) BienResponse {
	return BienResponse{
		ID:               bien.ID,
		LeadID:           bien.LeadID,
		Source:           bien.Source,
		SourceID:         bien.SourceID,
		Titre:            bien.Titre,
		URL:              bien.URL,
		PrixEur:          bien.PrixEur,
		Ville:            bien.Ville,
		CodePostal:       bien.CodePostal,
		SurfaceM2:        bien.SurfaceM2,
		TypeBien:         bien.TypeBien,
		NbPieces:         bien.NbPieces,
		Etat:             bien.Etat,
		Description:      bien.Description,
		DatePublication:  bien.DatePublication,
		DateDetection:    bien.DateDetection,
		Images:           bien.Images,
		ContactType:      bien.ContactType,
		ScoreMatch:       bien.ScoreMatch,
		Statut:           bien.Statut,
		CoordonneesGPS:   bien.CoordonneesGPS,
		Caracteristiques: bien.Caracteristiques,
	}
}
