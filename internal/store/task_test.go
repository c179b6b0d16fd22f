package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTaskResolvesEngineerByName(t *testing.T) {
	gdb := newTestDB(t)
	engineer := seedTestEngineer(t, gdb, "Jessica Park")
	project := seedTestProject(t, gdb, CreateProjectInput{})

	task, err := CreateTask(gdb, project.ID, CreateTaskInput{
		Engineer: "Jessica Park", HoursPerWeek: intPtr(12),
	})
	require.NoError(t, err)
	assert.Equal(t, engineer.ID, task.EngineerID)
	assert.Equal(t, "Jessica Park", task.Engineer.Name)
}

func TestCreateTaskValidation(t *testing.T) {
	gdb := newTestDB(t)
	project := seedTestProject(t, gdb, CreateProjectInput{})

	_, err := CreateTask(gdb, project.ID, CreateTaskInput{Engineer: "Nobody"})
	assert.True(t, IsValidation(err))

	_, err = CreateTask(gdb, project.ID, CreateTaskInput{Engineer: "Nobody", HoursPerWeek: intPtr(5)})
	assert.True(t, IsValidation(err))

	_, err = CreateTask(gdb, 404, CreateTaskInput{Engineer: "Nobody", HoursPerWeek: intPtr(5)})
	assert.True(t, IsNotFound(err))
}

func TestTaskPairUniqueness(t *testing.T) {
	gdb := newTestDB(t)
	engineer := seedTestEngineer(t, gdb, "Mike Rodriguez")
	project := seedTestProject(t, gdb, CreateProjectInput{Name: "A"})
	other := seedTestProject(t, gdb, CreateProjectInput{Name: "B"})

	_, err := CreateTask(gdb, project.ID, CreateTaskInput{EngineerID: engineer.ID, HoursPerWeek: intPtr(10)})
	require.NoError(t, err)

	_, err = CreateTask(gdb, project.ID, CreateTaskInput{EngineerID: engineer.ID, HoursPerWeek: intPtr(15)})
	assert.True(t, IsValidation(err))

	// A different project is a different pair.
	_, err = CreateTask(gdb, other.ID, CreateTaskInput{EngineerID: engineer.ID, HoursPerWeek: intPtr(15)})
	assert.NoError(t, err)
}

func TestUpdateTaskRepointsEngineer(t *testing.T) {
	gdb := newTestDB(t)
	first := seedTestEngineer(t, gdb, "Sarah Chen")
	second := seedTestEngineer(t, gdb, "Tom Williams")
	project := seedTestProject(t, gdb, CreateProjectInput{})

	task, err := CreateTask(gdb, project.ID, CreateTaskInput{EngineerID: first.ID, HoursPerWeek: intPtr(10)})
	require.NoError(t, err)

	task, err = UpdateTask(gdb, task.ID, UpdateTaskInput{
		EngineerID:   Some(second.ID),
		HoursPerWeek: Some(20),
	})
	require.NoError(t, err)
	assert.Equal(t, second.ID, task.EngineerID)
	assert.Equal(t, 20, task.HoursPerWeek)

	// Re-pointing onto an existing (project, engineer) pair is rejected.
	blocker, err := CreateTask(gdb, project.ID, CreateTaskInput{EngineerID: first.ID, HoursPerWeek: intPtr(5)})
	require.NoError(t, err)

	_, err = UpdateTask(gdb, blocker.ID, UpdateTaskInput{EngineerID: Some(second.ID)})
	assert.True(t, IsValidation(err))

	_, err = UpdateTask(gdb, task.ID, UpdateTaskInput{EngineerID: Some(uint(404))})
	assert.True(t, IsNotFound(err))
}

func TestDeleteTask(t *testing.T) {
	gdb := newTestDB(t)
	engineer := seedTestEngineer(t, gdb, "Jessica Park")
	project := seedTestProject(t, gdb, CreateProjectInput{})

	task, err := CreateTask(gdb, project.ID, CreateTaskInput{EngineerID: engineer.ID, HoursPerWeek: intPtr(6)})
	require.NoError(t, err)

	require.NoError(t, DeleteTask(gdb, task.ID))
	assert.True(t, IsNotFound(DeleteTask(gdb, task.ID)))
}
