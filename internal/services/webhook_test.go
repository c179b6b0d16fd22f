package services

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookSendEchoesFlowResponse(t *testing.T) {
	var gotBody string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte("queued"))
	}))
	defer srv.Close()

	relay := &WebhookRelay{URL: srv.URL, client: srv.Client()}

	result, err := relay.Send(map[string]any{"event": "milestone-completed"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"event":"milestone-completed"}`, gotBody)
	assert.True(t, result.Success)
	assert.Equal(t, http.StatusAccepted, result.StatusCode)
	assert.Equal(t, "queued", result.Response)
}

func TestWebhookSendFailureStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	relay := &WebhookRelay{URL: srv.URL, client: srv.Client()}

	result, err := relay.Send(map[string]any{})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, http.StatusBadRequest, result.StatusCode)
}

func TestWebhookSendRequiresURL(t *testing.T) {
	relay := &WebhookRelay{client: http.DefaultClient}

	_, err := relay.Send(map[string]any{})
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CategoryConfig, se.Category)
	assert.Equal(t, http.StatusBadRequest, se.HTTPStatus())
}
