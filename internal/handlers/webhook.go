package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/opsdash-dev/opsdash/internal/services"
)

func TriggerWebhook(ctx *gin.Context) {
	var payload map[string]any
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON payload"})
		return
	}

	result, err := services.NewWebhookRelayFromEnv().Send(payload)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// TestWebhook sends a canned payload so operators can verify the flow URL
// without crafting a request body.
func TestWebhook(ctx *gin.Context) {
	payload := gin.H{
		"source":    "opsdash",
		"event":     "test",
		"message":   "Webhook connectivity test",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	result, err := services.NewWebhookRelayFromEnv().Send(payload)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":    result.Success,
		"statusCode": result.StatusCode,
		"response":   result.Response,
		"sent":       payload,
	})
}
