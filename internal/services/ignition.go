package services

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Ignition collaborator: a reverse-proxy client for the on-premise
// manufacturing-execution system, reachable only from inside the plant
// network. Requests are forwarded as-is and responses passed back with the
// upstream status code.

const (
	ignitionTimeout       = 30 * time.Second
	ignitionHealthTimeout = 10 * time.Second
	rawSnippetLimit       = 500
)

type IgnitionClient struct {
	BaseURL  string
	Username string
	Password string

	client       *http.Client
	healthClient *http.Client
}

func NewIgnitionClientFromEnv() *IgnitionClient {
	// The MES gateway serves a self-signed certificate.
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}
	return &IgnitionClient{
		BaseURL:      strings.TrimRight(os.Getenv("IGNITION_API_BASE_URL"), "/"),
		Username:     os.Getenv("IGNITION_API_USERNAME"),
		Password:     os.Getenv("IGNITION_API_PASSWORD"),
		client:       &http.Client{Timeout: ignitionTimeout, Transport: transport},
		healthClient: &http.Client{Timeout: ignitionHealthTimeout, Transport: transport},
	}
}

// ProxyResult carries the upstream response. JSON is set when the body parsed;
// otherwise Raw holds a truncated snippet of whatever came back.
type ProxyResult struct {
	StatusCode int
	OK         bool
	JSON       json.RawMessage
	Raw        string
}

func (c *IgnitionClient) authenticated() bool {
	return c.Username != "" && c.Password != ""
}

// Do forwards a request to the Ignition API. Transport failures come back as
// categorized errors; upstream HTTP errors are not errors here, the caller
// relays them with their status code.
func (c *IgnitionClient) Do(method, path string, query url.Values, body any) (*ProxyResult, error) {
	return c.do(c.client, method, path, query, body)
}

func (c *IgnitionClient) do(client *http.Client, method, path string, query url.Values, body any) (*ProxyResult, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	target := c.BaseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, serviceErr(CategoryConfig, "could not encode request body", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, target, reqBody)
	if err != nil {
		return nil, serviceErr(CategoryConfig, "invalid Ignition URL", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authenticated() {
		req.SetBasicAuth(c.Username, c.Password)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, classify("Ignition request failed", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify("reading Ignition response failed", err)
	}

	result := &ProxyResult{
		StatusCode: resp.StatusCode,
		OK:         resp.StatusCode >= 200 && resp.StatusCode < 300,
	}
	if json.Valid(data) && len(bytes.TrimSpace(data)) > 0 {
		result.JSON = json.RawMessage(data)
	} else {
		snippet := string(data)
		if len(snippet) > rawSnippetLimit {
			snippet = snippet[:rawSnippetLimit]
		}
		result.Raw = snippet
	}
	return result, nil
}

type IgnitionHealth struct {
	Status        string `json:"status"`
	StatusCode    int    `json:"statusCode,omitempty"`
	IgnitionURL   string `json:"ignitionUrl"`
	Authenticated bool   `json:"authenticated"`
	Timestamp     string `json:"timestamp"`
}

// Health probes the ops endpoint with a short timeout to verify connectivity.
func (c *IgnitionClient) Health() (*IgnitionHealth, error) {
	health := &IgnitionHealth{
		IgnitionURL:   c.BaseURL,
		Authenticated: c.authenticated(),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}

	result, err := c.do(c.healthClient, http.MethodGet, "/ops/jira", nil, nil)
	if err != nil {
		return health, err
	}

	health.StatusCode = result.StatusCode
	if result.OK {
		health.Status = "connected"
	} else {
		health.Status = "error"
	}
	return health, nil
}
