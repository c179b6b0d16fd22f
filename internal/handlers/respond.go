package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/opsdash-dev/opsdash/internal/models"
	"github.com/opsdash-dev/opsdash/internal/services"
	"github.com/opsdash-dev/opsdash/internal/store"
)

// respondError maps the store/service error taxonomy onto HTTP statuses:
// NotFound 404, Validation 400, categorized service errors onto their own
// statuses, anything else 500.
func respondError(ctx *gin.Context, err error) {
	var nf *store.NotFoundError
	if errors.As(err, &nf) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": nf.Error()})
		return
	}

	var ve *store.ValidationError
	if errors.As(err, &ve) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": ve.Message})
		return
	}

	if se, ok := services.AsServiceError(err); ok {
		ctx.JSON(se.HTTPStatus(), gin.H{"error": se.Error()})
		return
	}

	log.Printf("internal error: %v", err)
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

func datePtr(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := store.FormatDate(*d)
	return &s
}

type NonProjectTimeResponse struct {
	ID    uint   `json:"id"`
	Type  string `json:"type"`
	Hours int    `json:"hours"`
}

type EngineerResponse struct {
	ID             uint                     `json:"id"`
	Name           string                   `json:"name"`
	Role           string                   `json:"role"`
	TotalHours     int                      `json:"totalHours"`
	NonProjectTime []NonProjectTimeResponse `json:"nonProjectTime"`
}

func toEngineerResponse(e *models.Engineer) EngineerResponse {
	npt := make([]NonProjectTimeResponse, 0, len(e.NonProjectTime))
	for _, row := range e.NonProjectTime {
		npt = append(npt, toNonProjectTimeResponse(&row))
	}
	return EngineerResponse{
		ID:             e.ID,
		Name:           e.Name,
		Role:           e.Role,
		TotalHours:     e.TotalHours,
		NonProjectTime: npt,
	}
}

func toNonProjectTimeResponse(npt *models.EngineerNonProjectTime) NonProjectTimeResponse {
	return NonProjectTimeResponse{ID: npt.ID, Type: npt.Type, Hours: npt.Hours}
}

type ExpenseResponse struct {
	ID          uint    `json:"id"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
}

func toExpenseResponse(e *models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Date:        store.FormatDate(e.Date),
		Description: e.Description,
		Amount:      e.Amount,
		Category:    e.Category,
	}
}

type AssignmentResponse struct {
	ID           uint   `json:"id"`
	MilestoneID  uint   `json:"milestoneId"`
	EngineerID   uint   `json:"engineerId"`
	Engineer     string `json:"engineer"`
	HoursPerWeek int    `json:"hoursPerWeek"`
}

func toAssignmentResponse(a *models.MilestoneAssignment) AssignmentResponse {
	return AssignmentResponse{
		ID:           a.ID,
		MilestoneID:  a.MilestoneID,
		EngineerID:   a.EngineerID,
		Engineer:     a.Engineer.Name,
		HoursPerWeek: a.HoursPerWeek,
	}
}

type MilestoneResponse struct {
	ID           uint                 `json:"id"`
	Name         string               `json:"name"`
	PlannedDate  string               `json:"plannedDate"`
	ActualDate   *string              `json:"actualDate"`
	Status       string               `json:"status"`
	StartDate    *string              `json:"startDate"`
	EndDate      *string              `json:"endDate"`
	HoursPerWeek *int                 `json:"hoursPerWeek"`
	Assignments  []AssignmentResponse `json:"assignments"`
}

func toMilestoneResponse(m *models.Milestone) MilestoneResponse {
	assignments := make([]AssignmentResponse, 0, len(m.Assignments))
	for _, a := range m.Assignments {
		assignments = append(assignments, toAssignmentResponse(&a))
	}
	return MilestoneResponse{
		ID:           m.ID,
		Name:         m.Name,
		PlannedDate:  store.FormatDate(m.PlannedDate),
		ActualDate:   datePtr(m.ActualDate),
		Status:       m.Status,
		StartDate:    datePtr(m.StartDate),
		EndDate:      datePtr(m.EndDate),
		HoursPerWeek: m.HoursPerWeek,
		Assignments:  assignments,
	}
}

type TaskResponse struct {
	ID           uint   `json:"id"`
	Engineer     string `json:"engineer"`
	EngineerID   uint   `json:"engineerId"`
	HoursPerWeek int    `json:"hoursPerWeek"`
}

func toTaskResponse(t *models.Task) TaskResponse {
	return TaskResponse{
		ID:           t.ID,
		Engineer:     t.Engineer.Name,
		EngineerID:   t.EngineerID,
		HoursPerWeek: t.HoursPerWeek,
	}
}

type ChangeHistoryResponse struct {
	ID        uint   `json:"id"`
	Field     string `json:"field"`
	OldValue  string `json:"oldValue"`
	NewValue  string `json:"newValue"`
	ChangedAt string `json:"changedAt"`
	ChangedBy string `json:"changedBy"`
}

func toChangeHistoryResponse(ch *models.ChangeHistory) ChangeHistoryResponse {
	return ChangeHistoryResponse{
		ID:        ch.ID,
		Field:     ch.Field,
		OldValue:  ch.OldValue,
		NewValue:  ch.NewValue,
		ChangedAt: ch.ChangedAt.Format(time.RFC3339),
		ChangedBy: ch.ChangedBy,
	}
}

type YearlyBudgetResponse struct {
	ID     uint    `json:"id"`
	Year   int     `json:"year"`
	Amount float64 `json:"amount"`
}

type JiraIssueResponse struct {
	ID        uint   `json:"id"`
	ProjectID uint   `json:"projectId"`
	JiraKey   string `json:"jiraKey"`
	CreatedAt string `json:"createdAt"`
}

func toJiraIssueResponse(ji *models.ProjectJiraIssue) JiraIssueResponse {
	return JiraIssueResponse{
		ID:        ji.ID,
		ProjectID: ji.ProjectID,
		JiraKey:   ji.JiraKey,
		CreatedAt: ji.CreatedAt.Format(time.RFC3339),
	}
}

type ProjectResponse struct {
	ID                    uint                    `json:"id"`
	Name                  string                  `json:"name"`
	Owner                 string                  `json:"owner"`
	OwnerID               *uint                   `json:"ownerId"`
	Priority              string                  `json:"priority"`
	Status                string                  `json:"status"`
	Progress              int                     `json:"progress"`
	StartDate             *string                 `json:"startDate"`
	EndDate               *string                 `json:"endDate"`
	EstimatedHoursPerWeek int                     `json:"estimatedHoursPerWeek"`
	Budget                float64                 `json:"budget"`
	Spent                 float64                 `json:"spent"`
	Notes                 string                  `json:"notes"`
	Location              string                  `json:"location"`
	JiraKey               string                  `json:"jiraKey"`
	JiraKeys              []string                `json:"jiraKeys"`
	Expenses              []ExpenseResponse       `json:"expenses"`
	Milestones            []MilestoneResponse     `json:"milestones"`
	Tasks                 []TaskResponse          `json:"tasks"`
	ChangeHistory         []ChangeHistoryResponse `json:"changeHistory"`
	YearlyBudgets         []YearlyBudgetResponse  `json:"yearlyBudgets"`
}

func toProjectResponse(p *models.Project) ProjectResponse {
	ownerName := "Unassigned"
	if p.Owner != nil {
		ownerName = p.Owner.Name
	}

	jiraKeys := make([]string, 0, len(p.JiraIssues))
	for _, ji := range p.JiraIssues {
		jiraKeys = append(jiraKeys, ji.JiraKey)
	}

	expenses := make([]ExpenseResponse, 0, len(p.Expenses))
	for _, e := range p.Expenses {
		expenses = append(expenses, toExpenseResponse(&e))
	}

	milestones := make([]MilestoneResponse, 0, len(p.Milestones))
	for _, m := range p.Milestones {
		milestones = append(milestones, toMilestoneResponse(&m))
	}

	tasks := make([]TaskResponse, 0, len(p.Tasks))
	for _, t := range p.Tasks {
		tasks = append(tasks, toTaskResponse(&t))
	}

	history := make([]ChangeHistoryResponse, 0, len(p.ChangeHistory))
	for _, ch := range p.ChangeHistory {
		history = append(history, toChangeHistoryResponse(&ch))
	}

	budgets := make([]YearlyBudgetResponse, 0, len(p.YearlyBudgets))
	for _, yb := range p.YearlyBudgets {
		budgets = append(budgets, YearlyBudgetResponse{ID: yb.ID, Year: yb.Year, Amount: yb.Amount})
	}

	return ProjectResponse{
		ID:                    p.ID,
		Name:                  p.Name,
		Owner:                 ownerName,
		OwnerID:               p.OwnerID,
		Priority:              p.Priority,
		Status:                p.Status,
		Progress:              p.Progress,
		StartDate:             datePtr(p.StartDate),
		EndDate:               datePtr(p.EndDate),
		EstimatedHoursPerWeek: p.EstimatedHoursPerWeek,
		Budget:                p.Budget,
		Spent:                 p.Spent,
		Notes:                 p.Notes,
		Location:              p.Location,
		JiraKey:               p.JiraKey,
		JiraKeys:              jiraKeys,
		Expenses:              expenses,
		Milestones:            milestones,
		Tasks:                 tasks,
		ChangeHistory:         history,
		YearlyBudgets:         budgets,
	}
}
