package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opsdash-dev/opsdash/db"
	"github.com/opsdash-dev/opsdash/internal/store"
	"github.com/opsdash-dev/opsdash/internal/utils"
)

func ListEngineers(ctx *gin.Context) {
	engineers, err := store.ListEngineers(db.DB)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]EngineerResponse, 0, len(engineers))

	for i := range engineers {
		response = append(response, toEngineerResponse(&engineers[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetEngineer(ctx *gin.Context) {
	id, err := utils.IDParam(ctx, "engineer_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	engineer, err := store.GetEngineer(db.DB, id)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toEngineerResponse(engineer))
}

func CreateEngineer(ctx *gin.Context) {
	var body store.CreateEngineerInput

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	engineer, err := store.CreateEngineer(db.DB, body)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, toEngineerResponse(engineer))
}

func UpdateEngineer(ctx *gin.Context) {
	id, err := utils.IDParam(ctx, "engineer_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body store.UpdateEngineerInput

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	engineer, err := store.UpdateEngineer(db.DB, id, body)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toEngineerResponse(engineer))
}

func DeleteEngineer(ctx *gin.Context) {
	id, err := utils.IDParam(ctx, "engineer_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := store.DeleteEngineer(db.DB, id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func CreateNonProjectTime(ctx *gin.Context) {
	id, err := utils.IDParam(ctx, "engineer_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body store.NonProjectTimeInput

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "type and hours are required"})
		return
	}

	npt, err := store.CreateNonProjectTime(db.DB, id, body)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, toNonProjectTimeResponse(npt))
}

func UpdateNonProjectTime(ctx *gin.Context) {
	nptID, err := utils.IDParam(ctx, "npt_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body store.UpdateNonProjectTimeInput

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	npt, err := store.UpdateNonProjectTime(db.DB, nptID, body)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toNonProjectTimeResponse(npt))
}

func DeleteNonProjectTime(ctx *gin.Context) {
	nptID, err := utils.IDParam(ctx, "npt_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := store.DeleteNonProjectTime(db.DB, nptID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
