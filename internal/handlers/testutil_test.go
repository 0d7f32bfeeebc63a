package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sigma-matching/sigma/db"
	"github.com/sigma-matching/sigma/internal/auth"
	"github.com/sigma-matching/sigma/internal/models"
	"github.com/sigma-matching/sigma/internal/router"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testPassword = "password123"

func setupTest(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	if err := auth.InitJWTSecret(); err != nil {
		t.Fatalf("init jwt secret: %v", err)
	}

	// Unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})

	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	err = gdb.AutoMigrate(&models.User{}, &models.Lead{}, &models.BienPropose{}, &models.HistoriqueAction{})

	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	db.DB = gdb

	return router.NewRouter()
}

func createUser(t *testing.T, email, role string, active bool) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)

	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "Test",
		LastName:     "User",
		Role:         role,
		IsActive:     active,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	return user
}

func createLead(t *testing.T, agent models.User) models.Lead {
	t.Helper()

	villes, err := json.Marshal([]string{"Paris"})

	if err != nil {
		t.Fatalf("marshal villes: %v", err)
	}

	lead := models.Lead{
		AgentID:      agent.ID,
		Nom:          "Durand",
		Prenom:       "Jean",
		TypeBien:     "appartement",
		BudgetMaxEur: 300000,
		Villes:       villes,
		Urgence:      models.LeadUrgenceMoyenne,
		Statut:       models.LeadStatutEnCours,
	}

	if err := db.DB.Create(&lead).Error; err != nil {
		t.Fatalf("create lead: %v", err)
	}

	return lead
}

func accessTokenFor(t *testing.T, user models.User) string {
	t.Helper()

	accessToken, _, err := auth.GenerateTokenPair(user.ID)

	if err != nil {
		t.Fatalf("generate tokens: %v", err)
	}

	return accessToken
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)

		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}

		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}

	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v (body: %s)", err, w.Body.String())
	}

	return body
}
