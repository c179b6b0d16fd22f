package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/opsdash-dev/opsdash/internal/services"
)

// Reverse proxy for the plant Ignition gateway. Responses are relayed with the
// upstream status code; a non-JSON upstream body is surfaced as a 502 with a
// truncated snippet so connectivity issues stay diagnosable.

func relayProxyResult(ctx *gin.Context, result *services.ProxyResult, strict bool) {
	if result.JSON != nil {
		ctx.Data(result.StatusCode, "application/json", result.JSON)
		return
	}

	if strict {
		ctx.JSON(http.StatusBadGateway, gin.H{
			"error":       "Invalid JSON response from Ignition",
			"rawResponse": result.Raw,
		})
		return
	}

	ctx.JSON(result.StatusCode, gin.H{
		"success":    result.OK,
		"statusCode": result.StatusCode,
		"response":   result.Raw,
	})
}

func ProxyIgnitionOpsJira(ctx *gin.Context) {
	client := services.NewIgnitionClientFromEnv()

	query := url.Values{}
	for key, values := range ctx.Request.URL.Query() {
		for _, v := range values {
			query.Add(key, v)
		}
	}

	result, err := client.Do(http.MethodGet, "/ops/jira", query, nil)

	if err != nil {
		respondError(ctx, err)
		return
	}

	relayProxyResult(ctx, result, true)
}

func ProxyIgnitionOpsJiraIssue(ctx *gin.Context) {
	client := services.NewIgnitionClientFromEnv()

	// Ignition expects issueKey as a query param, not a path segment.
	query := url.Values{"issueKey": []string{ctx.Param("issue_key")}}

	result, err := client.Do(http.MethodGet, "/ops/jira", query, nil)

	if err != nil {
		respondError(ctx, err)
		return
	}

	relayProxyResult(ctx, result, true)
}

func ProxyIgnitionGeneric(ctx *gin.Context) {
	path := ctx.Query("path")

	if path == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Missing required \"path\" query parameter",
			"example": "/api/ignition/proxy?path=/ops/jira",
		})
		return
	}

	query := url.Values{}
	for key, values := range ctx.Request.URL.Query() {
		if key == "path" {
			continue
		}
		for _, v := range values {
			query.Add(key, v)
		}
	}

	var body any
	if ctx.Request.Method == http.MethodPost || ctx.Request.Method == http.MethodPut {
		// Body is optional; ignore bind failures on empty bodies.
		_ = ctx.ShouldBindJSON(&body)
	}

	client := services.NewIgnitionClientFromEnv()
	result, err := client.Do(ctx.Request.Method, path, query, body)

	if err != nil {
		respondError(ctx, err)
		return
	}

	relayProxyResult(ctx, result, false)
}

func IgnitionHealth(ctx *gin.Context) {
	health, err := services.NewIgnitionClientFromEnv().Health()

	if err != nil {
		if se, ok := services.AsServiceError(err); ok {
			health.Status = "disconnected"
			ctx.JSON(se.HTTPStatus(), gin.H{
				"status":      health.Status,
				"error":       se.Error(),
				"ignitionUrl": health.IgnitionURL,
				"timestamp":   health.Timestamp,
			})
			return
		}
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, health)
}
