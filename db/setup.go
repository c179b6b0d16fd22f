package db

import (
	"github.com/opsdash-dev/opsdash/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	entities := []interface{}{
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
	}

	migrator := DB.Migrator()

	for _, entity := range entities {
		if !migrator.HasTable(entity) {
			if err := DB.AutoMigrate(entity); err != nil {
				return err
			}
		}
	}

	return nil
}
