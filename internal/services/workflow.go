package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

const defaultWorkflowBaseURL = "http://localhost:5678/webhook"

var workflowClient = &http.Client{Timeout: 10 * time.Second}

// TriggerWorkflow fires an external automation workflow. Callers treat a
// failure as non-fatal: the notification is fire-and-forget.
func TriggerWorkflow(workflow string, payload interface{}) error {
	baseURL := os.Getenv("N8N_WEBHOOK_URL")

	if baseURL == "" {
		baseURL = defaultWorkflowBaseURL
	}

	body, err := json.Marshal(payload)

	if err != nil {
		return fmt.Errorf("failed to marshal workflow payload: %w", err)
	}

	resp, err := workflowClient.Post(fmt.Sprintf("%s/%s", baseURL, workflow), "application/json", bytes.NewBuffer(body))

	if err != nil {
		return fmt.Errorf("failed to trigger workflow %s: %w", workflow, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("workflow %s returned status %d", workflow, resp.StatusCode)
	}

	return nil
}
