package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdash-dev/opsdash/internal/models"
)

func TestCreateProjectDefaults(t *testing.T) {
	gdb := newTestDB(t)

	project, err := CreateProject(gdb, CreateProjectInput{Name: "Line Audit"})
	require.NoError(t, err)

	assert.Equal(t, "Medium", project.Priority)
	assert.Equal(t, "Planned", project.Status)
	assert.Nil(t, project.OwnerID)
	assert.Nil(t, project.StartDate)

	_, err = CreateProject(gdb, CreateProjectInput{})
	assert.True(t, IsValidation(err))

	_, err = CreateProject(gdb, CreateProjectInput{Name: "Bad Dates", StartDate: "01/02/2025"})
	assert.True(t, IsValidation(err))
}

func TestCreateProjectOwnerByName(t *testing.T) {
	gdb := newTestDB(t)
	owner := seedTestEngineer(t, gdb, "Mike Rodriguez")

	project, err := CreateProject(gdb, CreateProjectInput{Name: "Owned", Owner: "Mike Rodriguez"})
	require.NoError(t, err)
	require.NotNil(t, project.OwnerID)
	assert.Equal(t, owner.ID, *project.OwnerID)

	// An unknown owner name leaves the project unowned rather than failing.
	project, err = CreateProject(gdb, CreateProjectInput{Name: "Orphan", Owner: "Nobody"})
	require.NoError(t, err)
	assert.Nil(t, project.OwnerID)
}

func TestYearlyBudgetsReplacedWholesale(t *testing.T) {
	gdb := newTestDB(t)

	project, err := CreateProject(gdb, CreateProjectInput{
		Name: "Multi-Year",
		YearlyBudgets: []YearlyBudgetInput{
			{Year: 2025, Amount: 40000},
			{Year: 2026, Amount: 60000},
			{Year: 2027, Amount: 0}, // non-positive rows are dropped
		},
	})
	require.NoError(t, err)
	require.Len(t, project.YearlyBudgets, 2)

	project, err = UpdateProject(gdb, project.ID, UpdateProjectInput{
		YearlyBudgets: Some([]YearlyBudgetInput{{Year: 2026, Amount: 75000}}),
	})
	require.NoError(t, err)
	require.Len(t, project.YearlyBudgets, 1)
	assert.Equal(t, 2026, project.YearlyBudgets[0].Year)
	assert.InDelta(t, 75000, project.YearlyBudgets[0].Amount, 0.001)
}

func TestUpdateProjectSparsePatchSemantics(t *testing.T) {
	gdb := newTestDB(t)
	project := seedTestProject(t, gdb, CreateProjectInput{
		Name: "Patchable", StartDate: "2025-01-01", Notes: "original notes",
	})

	// An absent field is untouched, a null one is cleared.
	var patch UpdateProjectInput
	require.NoError(t, json.Unmarshal([]byte(`{"startDate": null, "progress": 30}`), &patch))

	updated, err := UpdateProject(gdb, project.ID, patch)
	require.NoError(t, err)

	assert.Nil(t, updated.StartDate)
	assert.Equal(t, 30, updated.Progress)
	assert.Equal(t, "original notes", updated.Notes)
}

func TestDeleteProjectCascadesAllChildren(t *testing.T) {
	gdb := newTestDB(t)
	engineer := seedTestEngineer(t, gdb, "Sarah Chen")
	project := seedTestProject(t, gdb, CreateProjectInput{
		Name: "Doomed", OwnerID: &engineer.ID, StartDate: "2025-01-01",
		YearlyBudgets: []YearlyBudgetInput{{Year: 2025, Amount: 1000}},
	})

	milestone, err := CreateMilestone(gdb, project.ID, CreateMilestoneInput{Name: "FAT", PlannedDate: "2025-02-01"})
	require.NoError(t, err)
	_, err = CreateAssignment(gdb, milestone.ID, CreateAssignmentInput{EngineerID: engineer.ID, HoursPerWeek: 5})
	require.NoError(t, err)
	_, err = CreateExpense(gdb, project.ID, CreateExpenseInput{Date: "2025-01-05", Description: "Parts", Amount: floatPtr(100)})
	require.NoError(t, err)
	_, err = CreateTask(gdb, project.ID, CreateTaskInput{EngineerID: engineer.ID, HoursPerWeek: intPtr(8)})
	require.NoError(t, err)
	_, err = AddJiraIssue(gdb, project.ID, "OPS-101")
	require.NoError(t, err)

	require.NoError(t, DeleteProject(gdb, project.ID))

	_, err = GetProject(gdb, project.ID)
	assert.True(t, IsNotFound(err))

	counts := map[string]any{
		"milestones":            &models.Milestone{},
		"milestone assignments": &models.MilestoneAssignment{},
		"expenses":              &models.Expense{},
		"tasks":                 &models.Task{},
		"change history":        &models.ChangeHistory{},
		"yearly budgets":        &models.ProjectYearlyBudget{},
		"jira issues":           &models.ProjectJiraIssue{},
	}
	for name, model := range counts {
		var count int64
		require.NoError(t, gdb.Model(model).Count(&count).Error)
		assert.Zerof(t, count, "expected no %s after project delete", name)
	}

	// The engineer is untouched.
	_, err = GetEngineer(gdb, engineer.ID)
	assert.NoError(t, err)
}

func TestJiraIssueLinks(t *testing.T) {
	gdb := newTestDB(t)
	project := seedTestProject(t, gdb, CreateProjectInput{Name: "Linked"})

	_, err := AddJiraIssue(gdb, project.ID, "")
	assert.True(t, IsValidation(err))

	_, err = AddJiraIssue(gdb, 404, "OPS-1")
	assert.True(t, IsNotFound(err))

	_, err = AddJiraIssue(gdb, project.ID, "OPS-1")
	require.NoError(t, err)

	_, err = AddJiraIssue(gdb, project.ID, "OPS-1")
	assert.True(t, IsValidation(err))

	issues, err := ListJiraIssues(gdb, project.ID)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "OPS-1", issues[0].JiraKey)

	assert.True(t, IsNotFound(DeleteJiraIssue(gdb, project.ID, "OPS-9")))
	require.NoError(t, DeleteJiraIssue(gdb, project.ID, "OPS-1"))

	issues, err = ListJiraIssues(gdb, project.ID)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestGetProjectEmbedsChildren(t *testing.T) {
	gdb := newTestDB(t)
	engineer := seedTestEngineer(t, gdb, "Tom Williams")
	project := seedTestProject(t, gdb, CreateProjectInput{
		Name: "Full", OwnerID: &engineer.ID, StartDate: "2025-01-01",
	})

	milestone, err := CreateMilestone(gdb, project.ID, CreateMilestoneInput{Name: "SAT", PlannedDate: "2025-03-01"})
	require.NoError(t, err)
	_, err = CreateAssignment(gdb, milestone.ID, CreateAssignmentInput{EngineerID: engineer.ID, HoursPerWeek: 6})
	require.NoError(t, err)

	full, err := GetProject(gdb, project.ID)
	require.NoError(t, err)

	require.NotNil(t, full.Owner)
	assert.Equal(t, "Tom Williams", full.Owner.Name)
	require.Len(t, full.Milestones, 1)
	require.Len(t, full.Milestones[0].Assignments, 1)
	assert.Equal(t, "Tom Williams", full.Milestones[0].Assignments[0].Engineer.Name)
	assert.Len(t, full.ChangeHistory, 1) // the "Milestone Added" row
}
