package store

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/opsdash-dev/opsdash/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, gdb.AutoMigrate(
		&models.Engineer{},
		&models.EngineerNonProjectTime{},
		&models.Project{},
		&models.ProjectYearlyBudget{},
		&models.ProjectJiraIssue{},
		&models.Milestone{},
		&models.MilestoneAssignment{},
		&models.Task{},
		&models.Expense{},
		&models.ChangeHistory{},
	))
	return gdb
}

func seedTestEngineer(t *testing.T, gdb *gorm.DB, name string) *models.Engineer {
	t.Helper()

	engineer, err := CreateEngineer(gdb, CreateEngineerInput{Name: name, Role: "Process Engineer"})
	require.NoError(t, err)
	return engineer
}

func seedTestProject(t *testing.T, gdb *gorm.DB, in CreateProjectInput) *models.Project {
	t.Helper()

	if in.Name == "" {
		in.Name = "Line Upgrade"
	}
	project, err := CreateProject(gdb, in)
	require.NoError(t, err)
	return project
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
