package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdash-dev/opsdash/internal/models"
)

func TestCreateEngineerDefaults(t *testing.T) {
	gdb := newTestDB(t)

	engineer, err := CreateEngineer(gdb, CreateEngineerInput{Name: "Tom Williams"})
	require.NoError(t, err)
	assert.Equal(t, 40, engineer.TotalHours)

	engineer, err = CreateEngineer(gdb, CreateEngineerInput{Name: "Jessica Park", TotalHours: intPtr(32)})
	require.NoError(t, err)
	assert.Equal(t, 32, engineer.TotalHours)

	_, err = CreateEngineer(gdb, CreateEngineerInput{})
	assert.True(t, IsValidation(err))
}

func TestUpdateEngineerSparsePatch(t *testing.T) {
	gdb := newTestDB(t)
	engineer := seedTestEngineer(t, gdb, "Sarah Chen")

	updated, err := UpdateEngineer(gdb, engineer.ID, UpdateEngineerInput{
		TotalHours: Some(36),
	})
	require.NoError(t, err)

	assert.Equal(t, "Sarah Chen", updated.Name)
	assert.Equal(t, "Process Engineer", updated.Role)
	assert.Equal(t, 36, updated.TotalHours)
}

func TestUpdateEngineerNotFound(t *testing.T) {
	gdb := newTestDB(t)

	_, err := UpdateEngineer(gdb, 77, UpdateEngineerInput{Name: Some("Nobody")})
	assert.True(t, IsNotFound(err))
}

func TestDeleteEngineerDetachesProjectsCascadesRest(t *testing.T) {
	gdb := newTestDB(t)
	engineer := seedTestEngineer(t, gdb, "Mike Rodriguez")
	other := seedTestEngineer(t, gdb, "Sarah Chen")

	project := seedTestProject(t, gdb, CreateProjectInput{
		Name: "Stacker Retrofit", OwnerID: &engineer.ID, StartDate: "2025-01-01",
	})

	_, err := CreateNonProjectTime(gdb, engineer.ID, NonProjectTimeInput{Type: "Line Support", Hours: intPtr(8)})
	require.NoError(t, err)

	_, err = CreateTask(gdb, project.ID, CreateTaskInput{EngineerID: engineer.ID, HoursPerWeek: intPtr(10)})
	require.NoError(t, err)
	keptTask, err := CreateTask(gdb, project.ID, CreateTaskInput{EngineerID: other.ID, HoursPerWeek: intPtr(5)})
	require.NoError(t, err)

	milestone, err := CreateMilestone(gdb, project.ID, CreateMilestoneInput{Name: "FAT", PlannedDate: "2025-02-01"})
	require.NoError(t, err)
	_, err = CreateAssignment(gdb, milestone.ID, CreateAssignmentInput{EngineerID: engineer.ID, HoursPerWeek: 4})
	require.NoError(t, err)

	require.NoError(t, DeleteEngineer(gdb, engineer.ID))

	// The project survives with ownership cleared.
	survivor, err := GetProject(gdb, project.ID)
	require.NoError(t, err)
	assert.Nil(t, survivor.OwnerID)

	// The engineer's commitments are gone; everyone else's remain.
	var tasks []models.Task
	require.NoError(t, gdb.Where("project_id = ?", project.ID).Find(&tasks).Error)
	require.Len(t, tasks, 1)
	assert.Equal(t, keptTask.ID, tasks[0].ID)

	var nptCount int64
	require.NoError(t, gdb.Model(&models.EngineerNonProjectTime{}).Where("engineer_id = ?", engineer.ID).Count(&nptCount).Error)
	assert.Zero(t, nptCount)

	var assignmentCount int64
	require.NoError(t, gdb.Model(&models.MilestoneAssignment{}).Where("engineer_id = ?", engineer.ID).Count(&assignmentCount).Error)
	assert.Zero(t, assignmentCount)

	_, err = GetEngineer(gdb, engineer.ID)
	assert.True(t, IsNotFound(err))
}

func TestNonProjectTimeLifecycle(t *testing.T) {
	gdb := newTestDB(t)
	engineer := seedTestEngineer(t, gdb, "Tom Williams")

	_, err := CreateNonProjectTime(gdb, 404, NonProjectTimeInput{Type: "Meetings", Hours: intPtr(3)})
	assert.True(t, IsNotFound(err))

	_, err = CreateNonProjectTime(gdb, engineer.ID, NonProjectTimeInput{Type: "Meetings"})
	assert.True(t, IsValidation(err))

	npt, err := CreateNonProjectTime(gdb, engineer.ID, NonProjectTimeInput{Type: "Meetings", Hours: intPtr(3)})
	require.NoError(t, err)

	npt, err = UpdateNonProjectTime(gdb, npt.ID, UpdateNonProjectTimeInput{Hours: Some(5)})
	require.NoError(t, err)
	assert.Equal(t, "Meetings", npt.Type)
	assert.Equal(t, 5, npt.Hours)

	require.NoError(t, DeleteNonProjectTime(gdb, npt.ID))
	assert.True(t, IsNotFound(DeleteNonProjectTime(gdb, npt.ID)))
}
