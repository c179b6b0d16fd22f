package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opsdash-dev/opsdash/db"
	"github.com/opsdash-dev/opsdash/internal/store"
	"github.com/opsdash-dev/opsdash/internal/utils"
)

func CreateTask(ctx *gin.Context) {
	projectID, err := utils.IDParam(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body store.CreateTaskInput

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "hoursPerWeek is required"})
		return
	}

	task, err := store.CreateTask(db.DB, projectID, body)

	if err != nil {
		respondError(ctx, err)
		return
	}

	BroadcastRefresh(projectChannel(projectID))
	ctx.JSON(http.StatusCreated, toTaskResponse(task))
}

func UpdateTask(ctx *gin.Context) {
	id, err := utils.IDParam(ctx, "task_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body store.UpdateTaskInput

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := store.UpdateTask(db.DB, id, body)

	if err != nil {
		respondError(ctx, err)
		return
	}

	BroadcastRefresh(projectChannel(task.ProjectID))
	ctx.JSON(http.StatusOK, toTaskResponse(task))
}

func DeleteTask(ctx *gin.Context) {
	id, err := utils.IDParam(ctx, "task_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := store.DeleteTask(db.DB, id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
