package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/opsdash-dev/opsdash/db"
	"github.com/opsdash-dev/opsdash/internal/services"
	"github.com/opsdash-dev/opsdash/internal/store"
	"github.com/opsdash-dev/opsdash/internal/utils"
)

// Linked issue keys on a project.

type AddJiraIssueRequest struct {
	JiraKey string `json:"jiraKey"`
}

func ListProjectJiraIssues(ctx *gin.Context) {
	projectID, err := utils.IDParam(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issues, err := store.ListJiraIssues(db.DB, projectID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]JiraIssueResponse, 0, len(issues))

	for i := range issues {
		response = append(response, toJiraIssueResponse(&issues[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func AddProjectJiraIssue(ctx *gin.Context) {
	projectID, err := utils.IDParam(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body AddJiraIssueRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "jiraKey is required"})
		return
	}

	issue, err := store.AddJiraIssue(db.DB, projectID, strings.TrimSpace(body.JiraKey))

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, toJiraIssueResponse(issue))
}

func DeleteProjectJiraIssue(ctx *gin.Context) {
	projectID, err := utils.IDParam(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	jiraKey := ctx.Param("jira_key")

	if err := store.DeleteJiraIssue(db.DB, projectID, jiraKey); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Outbound Jira lookups.

func GetJiraConfig(ctx *gin.Context) {
	info, err := services.NewJiraClientFromEnv().Config()

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, info)
}

func GetJiraIssue(ctx *gin.Context) {
	issueKey := ctx.Param("issue_key")

	tree, err := services.NewJiraClientFromEnv().FetchIssue(issueKey)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, tree)
}
