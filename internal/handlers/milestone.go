package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/opsdash-dev/opsdash/db"
	"github.com/opsdash-dev/opsdash/internal/store"
	"github.com/opsdash-dev/opsdash/internal/utils"
)

func projectChannel(projectID uint) string {
	return strconv.FormatUint(uint64(projectID), 10)
}

func CreateMilestone(ctx *gin.Context) {
	projectID, err := utils.IDParam(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body store.CreateMilestoneInput

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "name and plannedDate are required"})
		return
	}

	milestone, err := store.CreateMilestone(db.DB, projectID, body)

	if err != nil {
		respondError(ctx, err)
		return
	}

	BroadcastRefresh(projectChannel(projectID))
	ctx.JSON(http.StatusCreated, toMilestoneResponse(milestone))
}

func UpdateMilestone(ctx *gin.Context) {
	id, err := utils.IDParam(ctx, "milestone_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body store.UpdateMilestoneInput

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	milestone, err := store.UpdateMilestone(db.DB, id, body)

	if err != nil {
		respondError(ctx, err)
		return
	}

	BroadcastRefresh(projectChannel(milestone.ProjectID))
	ctx.JSON(http.StatusOK, toMilestoneResponse(milestone))
}

func DeleteMilestone(ctx *gin.Context) {
	id, err := utils.IDParam(ctx, "milestone_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	milestone, err := store.GetMilestone(db.DB, id)

	if err != nil {
		respondError(ctx, err)
		return
	}

	if err := store.DeleteMilestone(db.DB, id); err != nil {
		respondError(ctx, err)
		return
	}

	BroadcastRefresh(projectChannel(milestone.ProjectID))
	ctx.Status(http.StatusNoContent)
}

func ListAssignments(ctx *gin.Context) {
	milestoneID, err := utils.IDParam(ctx, "milestone_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assignments, err := store.ListAssignments(db.DB, milestoneID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]AssignmentResponse, 0, len(assignments))

	for i := range assignments {
		response = append(response, toAssignmentResponse(&assignments[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func CreateAssignment(ctx *gin.Context) {
	milestoneID, err := utils.IDParam(ctx, "milestone_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body store.CreateAssignmentInput

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "engineerId is required"})
		return
	}

	assignment, err := store.CreateAssignment(db.DB, milestoneID, body)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, toAssignmentResponse(assignment))
}

func UpdateAssignment(ctx *gin.Context) {
	id, err := utils.IDParam(ctx, "assignment_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body store.UpdateAssignmentInput

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	assignment, err := store.UpdateAssignment(db.DB, id, body)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toAssignmentResponse(assignment))
}

func DeleteAssignment(ctx *gin.Context) {
	id, err := utils.IDParam(ctx, "assignment_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := store.DeleteAssignment(db.DB, id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
