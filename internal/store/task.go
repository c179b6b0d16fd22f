package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/opsdash-dev/opsdash/internal/models"
)

type CreateTaskInput struct {
	Engineer     string `json:"engineer"`
	EngineerID   uint   `json:"engineerId"`
	HoursPerWeek *int   `json:"hoursPerWeek" binding:"required"`
}

type UpdateTaskInput struct {
	EngineerID   Optional[uint] `json:"engineerId"`
	HoursPerWeek Optional[int]  `json:"hoursPerWeek"`
}

// CreateTask commits an engineer's weekly hours to a project. The engineer may
// be referenced by id or by name; either way the (project, engineer) pair must
// be unique.
func CreateTask(gdb *gorm.DB, projectID uint, in CreateTaskInput) (*models.Task, error) {
	if in.HoursPerWeek == nil {
		return nil, invalid("hoursPerWeek", "hoursPerWeek is required")
	}

	var task models.Task
	err := gdb.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, projectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("project", projectID)
			}
			return err
		}

		engineerID := in.EngineerID
		if engineerID == 0 && in.Engineer != "" {
			var engineer models.Engineer
			if err := tx.Where("name = ?", in.Engineer).First(&engineer).Error; err == nil {
				engineerID = engineer.ID
			}
		}
		if engineerID == 0 {
			return invalid("engineer", "Engineer not found")
		}

		var existing models.Task
		err := tx.Where("project_id = ? AND engineer_id = ?", projectID, engineerID).First(&existing).Error
		if err == nil {
			return invalid("engineer", "Engineer already assigned to this project")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		task = models.Task{
			ProjectID:    projectID,
			EngineerID:   engineerID,
			HoursPerWeek: *in.HoursPerWeek,
		}
		return tx.Create(&task).Error
	})
	if err != nil {
		return nil, err
	}

	if err := gdb.Preload("Engineer").First(&task, task.ID).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask changes the weekly hours and optionally re-points the task to a
// different engineer, re-checking pair uniqueness when it does.
func UpdateTask(gdb *gorm.DB, id uint, in UpdateTaskInput) (*models.Task, error) {
	var task models.Task

	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("task", id)
			}
			return err
		}

		if engineerID, ok := in.EngineerID.Get(); ok && engineerID != task.EngineerID {
			var engineer models.Engineer
			if err := tx.First(&engineer, engineerID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return notFound("engineer", engineerID)
				}
				return err
			}

			var existing models.Task
			err := tx.Where("project_id = ? AND engineer_id = ?", task.ProjectID, engineerID).First(&existing).Error
			if err == nil {
				return invalid("engineerId", "Engineer already assigned to this project")
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			task.EngineerID = engineerID
		}

		if hours, ok := in.HoursPerWeek.Get(); ok {
			task.HoursPerWeek = hours
		}
		return tx.Save(&task).Error
	})
	if err != nil {
		return nil, err
	}

	if err := gdb.Preload("Engineer").First(&task, task.ID).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func DeleteTask(gdb *gorm.DB, id uint) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.First(&task, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("task", id)
			}
			return err
		}
		return tx.Delete(&task).Error
	})
}
