package services

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"
)

// Power Automate collaborator: a one-way relay that forwards a payload to the
// configured flow endpoint and echoes back what the flow answered.

const webhookTimeout = 30 * time.Second

type WebhookRelay struct {
	URL    string
	client *http.Client
}

func NewWebhookRelayFromEnv() *WebhookRelay {
	return &WebhookRelay{
		URL:    os.Getenv("POWER_AUTOMATE_URL"),
		client: &http.Client{Timeout: webhookTimeout},
	}
}

type WebhookResult struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"status_code"`
	Response   string `json:"response"`
}

// Send posts the payload to the flow endpoint. A missing URL is a config
// error, so callers can tell operators what to set.
func (r *WebhookRelay) Send(payload any) (*WebhookResult, error) {
	if r.URL == "" {
		return nil, serviceErr(CategoryConfig, "Power Automate URL not configured", nil)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, serviceErr(CategoryConfig, "could not encode webhook payload", err)
	}

	resp, err := r.client.Post(r.URL, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, classify("Power Automate request failed", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify("reading Power Automate response failed", err)
	}

	return &WebhookResult{
		Success:    resp.StatusCode >= 200 && resp.StatusCode < 300,
		StatusCode: resp.StatusCode,
		Response:   string(data),
	}, nil
}
