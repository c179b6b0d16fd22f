package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opsdash-dev/opsdash/db"
	"github.com/opsdash-dev/opsdash/internal/store"
	"github.com/opsdash-dev/opsdash/internal/utils"
)

func CreateExpense(ctx *gin.Context) {
	projectID, err := utils.IDParam(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body store.CreateExpenseInput

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "date, description and amount are required"})
		return
	}

	expense, err := store.CreateExpense(db.DB, projectID, body)

	if err != nil {
		respondError(ctx, err)
		return
	}

	BroadcastRefresh(projectChannel(projectID))
	ctx.JSON(http.StatusCreated, toExpenseResponse(expense))
}

func UpdateExpense(ctx *gin.Context) {
	id, err := utils.IDParam(ctx, "expense_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body store.UpdateExpenseInput

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	expense, err := store.UpdateExpense(db.DB, id, body)

	if err != nil {
		respondError(ctx, err)
		return
	}

	BroadcastRefresh(projectChannel(expense.ProjectID))
	ctx.JSON(http.StatusOK, toExpenseResponse(expense))
}

func DeleteExpense(ctx *gin.Context) {
	id, err := utils.IDParam(ctx, "expense_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := store.DeleteExpense(db.DB, id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
