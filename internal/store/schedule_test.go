package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdash-dev/opsdash/internal/models"
)

func TestMilestoneWindowsChainFromProjectStart(t *testing.T) {
	gdb := newTestDB(t)
	project := seedTestProject(t, gdb, CreateProjectInput{StartDate: "2025-01-01"})

	first, err := CreateMilestone(gdb, project.ID, CreateMilestoneInput{
		Name: "Design Review", PlannedDate: "2025-02-01",
	})
	require.NoError(t, err)

	second, err := CreateMilestone(gdb, project.ID, CreateMilestoneInput{
		Name: "Install", PlannedDate: "2025-03-15",
	})
	require.NoError(t, err)

	first, err = GetMilestone(gdb, first.ID)
	require.NoError(t, err)

	assert.Equal(t, "2025-01-01", FormatDatePtr(first.StartDate))
	assert.Equal(t, "2025-02-01", FormatDatePtr(first.EndDate))
	assert.Equal(t, "2025-02-01", FormatDatePtr(second.StartDate))
	assert.Equal(t, "2025-03-15", FormatDatePtr(second.EndDate))
}

func TestMilestoneWindowsIgnoreInsertionOrder(t *testing.T) {
	gdb := newTestDB(t)
	project := seedTestProject(t, gdb, CreateProjectInput{StartDate: "2024-01-01"})

	later, err := CreateMilestone(gdb, project.ID, CreateMilestoneInput{
		Name: "Install", PlannedDate: "2024-03-01",
	})
	require.NoError(t, err)

	earlier, err := CreateMilestone(gdb, project.ID, CreateMilestoneInput{
		Name: "Procurement", PlannedDate: "2024-02-01",
	})
	require.NoError(t, err)

	later, err = GetMilestone(gdb, later.ID)
	require.NoError(t, err)
	earlier, err = GetMilestone(gdb, earlier.ID)
	require.NoError(t, err)

	// Windows follow the planned-date ordering, not insertion order.
	assert.Equal(t, "2024-01-01", FormatDatePtr(earlier.StartDate))
	assert.Equal(t, "2024-02-01", FormatDatePtr(earlier.EndDate))
	assert.Equal(t, "2024-02-01", FormatDatePtr(later.StartDate))
	assert.Equal(t, "2024-03-01", FormatDatePtr(later.EndDate))
}

func TestMilestoneWindowsTieBreakByCreationOrder(t *testing.T) {
	gdb := newTestDB(t)
	project := seedTestProject(t, gdb, CreateProjectInput{StartDate: "2025-01-01"})

	first, err := CreateMilestone(gdb, project.ID, CreateMilestoneInput{
		Name: "FAT", PlannedDate: "2025-02-01",
	})
	require.NoError(t, err)

	second, err := CreateMilestone(gdb, project.ID, CreateMilestoneInput{
		Name: "SAT", PlannedDate: "2025-02-01",
	})
	require.NoError(t, err)

	first, err = GetMilestone(gdb, first.ID)
	require.NoError(t, err)

	// Same planned date: the earlier row anchors at the project start, the
	// later one starts where the first ended.
	assert.Equal(t, "2025-01-01", FormatDatePtr(first.StartDate))
	assert.Equal(t, "2025-02-01", FormatDatePtr(first.EndDate))
	assert.Equal(t, "2025-02-01", FormatDatePtr(second.StartDate))
	assert.Equal(t, "2025-02-01", FormatDatePtr(second.EndDate))
}

func TestMilestoneWindowsNoProjectStartDate(t *testing.T) {
	gdb := newTestDB(t)
	project := seedTestProject(t, gdb, CreateProjectInput{})

	milestone, err := CreateMilestone(gdb, project.ID, CreateMilestoneInput{
		Name: "Kickoff", PlannedDate: "2025-02-01",
	})
	require.NoError(t, err)

	// No anchor date, so no window is derived.
	assert.Nil(t, milestone.StartDate)
	assert.Nil(t, milestone.EndDate)
}

func TestRecalculateScheduleIdempotent(t *testing.T) {
	gdb := newTestDB(t)
	project := seedTestProject(t, gdb, CreateProjectInput{StartDate: "2025-01-01"})

	milestone, err := CreateMilestone(gdb, project.ID, CreateMilestoneInput{
		Name: "Commissioning", PlannedDate: "2025-04-01",
	})
	require.NoError(t, err)

	require.NoError(t, RecalculateSchedule(gdb, project.ID))
	require.NoError(t, RecalculateSchedule(gdb, project.ID))

	milestone, err = GetMilestone(gdb, milestone.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", FormatDatePtr(milestone.StartDate))
	assert.Equal(t, "2025-04-01", FormatDatePtr(milestone.EndDate))
}

func TestRecalculateScheduleMissingProjectIsNoOp(t *testing.T) {
	gdb := newTestDB(t)
	require.NoError(t, RecalculateSchedule(gdb, 999))
}

func TestReplanShiftsFollowingWindows(t *testing.T) {
	gdb := newTestDB(t)
	project := seedTestProject(t, gdb, CreateProjectInput{StartDate: "2025-01-01"})

	first, err := CreateMilestone(gdb, project.ID, CreateMilestoneInput{
		Name: "Procurement", PlannedDate: "2025-02-01",
	})
	require.NoError(t, err)

	second, err := CreateMilestone(gdb, project.ID, CreateMilestoneInput{
		Name: "Install", PlannedDate: "2025-03-01",
	})
	require.NoError(t, err)

	// Push the first milestone past the second; the chain reorders.
	_, err = UpdateMilestone(gdb, first.ID, UpdateMilestoneInput{
		PlannedDate: Some("2025-04-01"),
	})
	require.NoError(t, err)

	second, err = GetMilestone(gdb, second.ID)
	require.NoError(t, err)
	first, err = GetMilestone(gdb, first.ID)
	require.NoError(t, err)

	assert.Equal(t, "2025-01-01", FormatDatePtr(second.StartDate))
	assert.Equal(t, "2025-03-01", FormatDatePtr(second.EndDate))
	assert.Equal(t, "2025-03-01", FormatDatePtr(first.StartDate))
	assert.Equal(t, "2025-04-01", FormatDatePtr(first.EndDate))
}

func TestDeleteMilestoneRecomputesRemainingWindows(t *testing.T) {
	gdb := newTestDB(t)
	project := seedTestProject(t, gdb, CreateProjectInput{StartDate: "2025-01-01"})

	first, err := CreateMilestone(gdb, project.ID, CreateMilestoneInput{
		Name: "Procurement", PlannedDate: "2025-02-01",
	})
	require.NoError(t, err)

	second, err := CreateMilestone(gdb, project.ID, CreateMilestoneInput{
		Name: "Install", PlannedDate: "2025-03-01",
	})
	require.NoError(t, err)

	require.NoError(t, DeleteMilestone(gdb, first.ID))

	second, err = GetMilestone(gdb, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", FormatDatePtr(second.StartDate))
	assert.Equal(t, "2025-03-01", FormatDatePtr(second.EndDate))

	var count int64
	require.NoError(t, gdb.Model(&models.Milestone{}).Where("project_id = ?", project.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAssignmentDoesNotChangeWindows(t *testing.T) {
	gdb := newTestDB(t)
	engineer := seedTestEngineer(t, gdb, "Sarah Chen")
	project := seedTestProject(t, gdb, CreateProjectInput{StartDate: "2025-01-01"})

	milestone, err := CreateMilestone(gdb, project.ID, CreateMilestoneInput{
		Name: "Validation", PlannedDate: "2025-02-01",
	})
	require.NoError(t, err)

	_, err = CreateAssignment(gdb, milestone.ID, CreateAssignmentInput{
		EngineerID: engineer.ID, HoursPerWeek: 10,
	})
	require.NoError(t, err)

	milestone, err = GetMilestone(gdb, milestone.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", FormatDatePtr(milestone.StartDate))
	assert.Equal(t, "2025-02-01", FormatDatePtr(milestone.EndDate))
}
