package handlers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sigma-matching/sigma/db"
	"github.com/sigma-matching/sigma/internal/models"
)

func TestCreateLead(t *testing.T) {
	r := setupTest(t)
	agent := createUser(t, "agent@x.com", models.RoleAgent, true)
	token := accessTokenFor(t, agent)

	w := doRequest(t, r, http.MethodPost, "/api/leads", token, map[string]interface{}{
		"nom":            "Durand",
		"prenom":         "Jean",
		"type_bien":      "appartement",
		"budget_max_eur": 300000,
		"villes":         []string{"Paris"},
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d (body: %s)", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	lead := body["lead"].(map[string]interface{})

	if lead["statut"] != models.LeadStatutEnCours {
		t.Errorf("expected statut EN_COURS, got %v", lead["statut"])
	}

	if lead["urgence"] != models.LeadUrgenceMoyenne {
		t.Errorf("expected urgence MOYENNE, got %v", lead["urgence"])
	}

	if uint(lead["agent_id"].(float64)) != agent.ID {
		t.Errorf("expected agent_id %d, got %v", agent.ID, lead["agent_id"])
	}
}

func TestCreateLeadValidation(t *testing.T) {
	r := setupTest(t)
	agent := createUser(t, "agent@x.com", models.RoleAgent, true)
	token := accessTokenFor(t, agent)

	valid := func() map[string]interface{} {
		return map[string]interface{}{
			"nom":            "Durand",
			"prenom":         "Jean",
			"type_bien":      "appartement",
			"budget_max_eur": 300000,
			"villes":         []string{"Paris"},
		}
	}

	for _, budget := range []int{0, -1, -300000} {
		payload := valid()
		payload["budget_max_eur"] = budget

		if w := doRequest(t, r, http.MethodPost, "/api/leads", token, payload); w.Code != http.StatusBadRequest {
			t.Errorf("budget %d: expected 400 got %d", budget, w.Code)
		}
	}

	payload := valid()
	payload["villes"] = []string{}

	if w := doRequest(t, r, http.MethodPost, "/api/leads", token, payload); w.Code != http.StatusBadRequest {
		t.Errorf("empty villes: expected 400 got %d", w.Code)
	}

	payload = valid()
	delete(payload, "nom")

	if w := doRequest(t, r, http.MethodPost, "/api/leads", token, payload); w.Code != http.StatusBadRequest {
		t.Errorf("missing nom: expected 400 got %d", w.Code)
	}

	var count int64

	if err := db.DB.Model(&models.Lead{}).Count(&count).Error; err != nil {
		t.Fatalf("count leads: %v", err)
	}

	if count != 0 {
		t.Errorf("expected no leads persisted, got %d", count)
	}
}

func TestLeadOwnership(t *testing.T) {
	r := setupTest(t)
	owner := createUser(t, "owner@x.com", models.RoleAgent, true)
	other := createUser(t, "other@x.com", models.RoleAgent, true)
	lead := createLead(t, owner)

	path := fmt.Sprintf("/api/leads/%d", lead.ID)

	if w := doRequest(t, r, http.MethodGet, path, accessTokenFor(t, owner), nil); w.Code != http.StatusOK {
		t.Errorf("owner GET: expected 200 got %d", w.Code)
	}

	// Out-of-scope rows look absent, never forbidden.
	if w := doRequest(t, r, http.MethodGet, path, accessTokenFor(t, other), nil); w.Code != http.StatusNotFound {
		t.Errorf("other agent GET: expected 404 got %d", w.Code)
	}

	update := map[string]interface{}{"notes": "intrusion"}

	if w := doRequest(t, r, http.MethodPut, path, accessTokenFor(t, other), update); w.Code != http.StatusNotFound {
		t.Errorf("other agent PUT: expected 404 got %d", w.Code)
	}

	if w := doRequest(t, r, http.MethodPut, path, accessTokenFor(t, owner), update); w.Code != http.StatusOK {
		t.Errorf("owner PUT: expected 200 got %d", w.Code)
	}
}

func TestAdminBypassesOwnership(t *testing.T) {
	r := setupTest(t)
	owner := createUser(t, "owner@x.com", models.RoleAgent, true)
	admin := createUser(t, "admin@x.com", models.RoleAdmin, true)
	lead := createLead(t, owner)

	path := fmt.Sprintf("/api/leads/%d", lead.ID)
	token := accessTokenFor(t, admin)

	if w := doRequest(t, r, http.MethodGet, path, token, nil); w.Code != http.StatusOK {
		t.Errorf("admin GET: expected 200 got %d", w.Code)
	}

	w := doRequest(t, r, http.MethodPut, path, token, map[string]interface{}{"statut": "TERMINE"})

	if w.Code != http.StatusOK {
		t.Fatalf("admin PUT: expected 200 got %d", w.Code)
	}

	var updated models.Lead

	if err := db.DB.First(&updated, lead.ID).Error; err != nil {
		t.Fatalf("reload lead: %v", err)
	}

	if updated.Statut != "TERMINE" {
		t.Errorf("expected statut TERMINE, got %s", updated.Statut)
	}
}

func TestUpdateLeadAllowList(t *testing.T) {
	r := setupTest(t)
	owner := createUser(t, "owner@x.com", models.RoleAgent, true)
	other := createUser(t, "other@x.com", models.RoleAgent, true)
	lead := createLead(t, owner)

	w := doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/leads/%d", lead.ID), accessTokenFor(t, owner), map[string]interface{}{
		"id":       9999,
		"agent_id": other.ID,
		"nom":      "Nouveau",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}

	var updated models.Lead

	if err := db.DB.First(&updated, lead.ID).Error; err != nil {
		t.Fatalf("reload lead: %v", err)
	}

	if updated.Nom != "Nouveau" {
		t.Errorf("expected nom updated, got %s", updated.Nom)
	}

	if updated.AgentID != owner.ID {
		t.Errorf("agent_id must not be client-settable, got %d", updated.AgentID)
	}
}

func TestUpdateLeadRefreshesUpdatedAt(t *testing.T) {
	r := setupTest(t)
	owner := createUser(t, "owner@x.com", models.RoleAgent, true)
	lead := createLead(t, owner)

	before := lead.UpdatedAt

	time.Sleep(10 * time.Millisecond)

	w := doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/leads/%d", lead.ID), accessTokenFor(t, owner), map[string]interface{}{
		"notes": "rappeler lundi",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}

	var updated models.Lead

	if err := db.DB.First(&updated, lead.ID).Error; err != nil {
		t.Fatalf("reload lead: %v", err)
	}

	if !updated.UpdatedAt.After(before) {
		t.Errorf("expected updated_at refreshed, before=%v after=%v", before, updated.UpdatedAt)
	}
}

func TestListLeadsScoped(t *testing.T) {
	r := setupTest(t)
	a := createUser(t, "a@x.com", models.RoleAgent, true)
	b := createUser(t, "b@x.com", models.RoleAgent, true)
	admin := createUser(t, "admin@x.com", models.RoleAdmin, true)

	createLead(t, a)
	createLead(t, a)
	createLead(t, b)

	w := doRequest(t, r, http.MethodGet, "/api/leads", accessTokenFor(t, a), nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}

	if body := decodeBody(t, w); body["total"].(float64) != 2 {
		t.Errorf("agent a: expected total 2, got %v", body["total"])
	}

	w = doRequest(t, r, http.MethodGet, "/api/leads", accessTokenFor(t, admin), nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}

	if body := decodeBody(t, w); body["total"].(float64) != 3 {
		t.Errorf("admin: expected total 3, got %v", body["total"])
	}
}

func TestCreateLeadTriggersWorkflow(t *testing.T) {
	r := setupTest(t)
	agent := createUser(t, "agent@x.com", models.RoleAgent, true)
	token := accessTokenFor(t, agent)

	var gotPath string

	workflow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer workflow.Close()

	t.Setenv("N8N_WEBHOOK_URL", workflow.URL)

	w := doRequest(t, r, http.MethodPost, "/api/leads", token, map[string]interface{}{
		"nom":            "Durand",
		"prenom":         "Jean",
		"type_bien":      "maison",
		"budget_max_eur": 450000,
		"villes":         []string{"Lyon"},
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", w.Code)
	}

	if gotPath != "/lead-created" {
		t.Errorf("expected workflow call on /lead-created, got %q", gotPath)
	}
}

func TestCreateLeadWorkflowFailureSwallowed(t *testing.T) {
	r := setupTest(t)
	agent := createUser(t, "agent@x.com", models.RoleAgent, true)
	token := accessTokenFor(t, agent)

	// Closed server: the notification fails, the create must not.
	workflow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {}))
	workflow.Close()

	t.Setenv("N8N_WEBHOOK_URL", workflow.URL)

	w := doRequest(t, r, http.MethodPost, "/api/leads", token, map[string]interface{}{
		"nom":            "Durand",
		"prenom":         "Jean",
		"type_bien":      "maison",
		"budget_max_eur": 450000,
		"villes":         []string{"Lyon"},
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 despite workflow failure, got %d", w.Code)
	}
}
