package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opsdash-dev/opsdash/db"
	"github.com/opsdash-dev/opsdash/internal/store"
	"github.com/opsdash-dev/opsdash/internal/utils"
)

func ListProjects(ctx *gin.Context) {
	projects, err := store.ListProjects(db.DB)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]ProjectResponse, 0, len(projects))

	for i := range projects {
		response = append(response, toProjectResponse(&projects[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetProject(ctx *gin.Context) {
	id, err := utils.IDParam(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := store.GetProject(db.DB, id)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toProjectResponse(project))
}

func CreateProject(ctx *gin.Context) {
	var body store.CreateProjectInput

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	project, err := store.CreateProject(db.DB, body)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, toProjectResponse(project))
}

func UpdateProject(ctx *gin.Context) {
	id, err := utils.IDParam(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body store.UpdateProjectInput

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project, err := store.UpdateProject(db.DB, id, body)

	if err != nil {
		respondError(ctx, err)
		return
	}

	BroadcastRefresh(ctx.Param("project_id"))
	ctx.JSON(http.StatusOK, toProjectResponse(project))
}

func DeleteProject(ctx *gin.Context) {
	id, err := utils.IDParam(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := store.DeleteProject(db.DB, id); err != nil {
		respondError(ctx, err)
		return
	}

	BroadcastRefresh(ctx.Param("project_id"))
	ctx.Status(http.StatusNoContent)
}

// RecalculateSpent rebuilds the running total from the expense ledger. This is
// the repair entry point for a total that drifted outside the normal paths.
func RecalculateSpent(ctx *gin.Context) {
	id, err := utils.IDParam(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	total, err := store.RecomputeProjectSpent(db.DB, id)

	if err != nil {
		respondError(ctx, err)
		return
	}

	BroadcastRefresh(ctx.Param("project_id"))
	ctx.JSON(http.StatusOK, gin.H{"projectId": id, "spent": total})
}
