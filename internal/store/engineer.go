package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/opsdash-dev/opsdash/internal/models"
)

type CreateEngineerInput struct {
	Name       string `json:"name" binding:"required"`
	Role       string `json:"role"`
	TotalHours *int   `json:"totalHours"`
}

type UpdateEngineerInput struct {
	Name       Optional[string] `json:"name"`
	Role       Optional[string] `json:"role"`
	TotalHours Optional[int]    `json:"totalHours"`
}

type NonProjectTimeInput struct {
	Type  string `json:"type" binding:"required"`
	Hours *int   `json:"hours" binding:"required"`
}

type UpdateNonProjectTimeInput struct {
	Type  Optional[string] `json:"type"`
	Hours Optional[int]    `json:"hours"`
}

func CreateEngineer(gdb *gorm.DB, in CreateEngineerInput) (*models.Engineer, error) {
	if in.Name == "" {
		return nil, invalid("name", "name is required")
	}

	engineer := models.Engineer{
		Name:       in.Name,
		Role:       in.Role,
		TotalHours: 40,
	}
	if in.TotalHours != nil {
		engineer.TotalHours = *in.TotalHours
	}

	err := gdb.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&engineer).Error
	})
	if err != nil {
		return nil, err
	}
	return &engineer, nil
}

func GetEngineer(gdb *gorm.DB, id uint) (*models.Engineer, error) {
	var engineer models.Engineer
	if err := gdb.Preload("NonProjectTime").First(&engineer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("engineer", id)
		}
		return nil, err
	}
	return &engineer, nil
}

func ListEngineers(gdb *gorm.DB) ([]models.Engineer, error) {
	var engineers []models.Engineer
	if err := gdb.Preload("NonProjectTime").Order("id ASC").Find(&engineers).Error; err != nil {
		return nil, err
	}
	return engineers, nil
}

func UpdateEngineer(gdb *gorm.DB, id uint, in UpdateEngineerInput) (*models.Engineer, error) {
	var engineer models.Engineer

	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&engineer, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("engineer", id)
			}
			return err
		}

		if name, ok := in.Name.Get(); ok {
			engineer.Name = name
		}
		if role, ok := in.Role.Get(); ok {
			engineer.Role = role
		}
		if hours, ok := in.TotalHours.Get(); ok {
			engineer.TotalHours = hours
		}

		return tx.Save(&engineer).Error
	})
	if err != nil {
		return nil, err
	}

	if err := gdb.Preload("NonProjectTime").First(&engineer, id).Error; err != nil {
		return nil, err
	}
	return &engineer, nil
}

// DeleteEngineer clears ownership on any projects the engineer owns, then
// cascades the engineer's strong-owned children per the deletion-policy table.
func DeleteEngineer(gdb *gorm.DB, id uint) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		var engineer models.Engineer
		if err := tx.First(&engineer, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("engineer", id)
			}
			return err
		}

		if err := applyDeleteRules(tx, engineerRules, id); err != nil {
			return err
		}
		return tx.Delete(&engineer).Error
	})
}

func CreateNonProjectTime(gdb *gorm.DB, engineerID uint, in NonProjectTimeInput) (*models.EngineerNonProjectTime, error) {
	if in.Type == "" {
		return nil, invalid("type", "type is required")
	}
	if in.Hours == nil {
		return nil, invalid("hours", "hours is required")
	}

	var npt models.EngineerNonProjectTime
	err := gdb.Transaction(func(tx *gorm.DB) error {
		var engineer models.Engineer
		if err := tx.First(&engineer, engineerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("engineer", engineerID)
			}
			return err
		}

		npt = models.EngineerNonProjectTime{
			EngineerID: engineerID,
			Type:       in.Type,
			Hours:      *in.Hours,
		}
		return tx.Create(&npt).Error
	})
	if err != nil {
		return nil, err
	}
	return &npt, nil
}

func UpdateNonProjectTime(gdb *gorm.DB, id uint, in UpdateNonProjectTimeInput) (*models.EngineerNonProjectTime, error) {
	var npt models.EngineerNonProjectTime

	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&npt, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("non-project time", id)
			}
			return err
		}

		if typ, ok := in.Type.Get(); ok {
			npt.Type = typ
		}
		if hours, ok := in.Hours.Get(); ok {
			npt.Hours = hours
		}

		return tx.Save(&npt).Error
	})
	if err != nil {
		return nil, err
	}
	return &npt, nil
}

func DeleteNonProjectTime(gdb *gorm.DB, id uint) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		var npt models.EngineerNonProjectTime
		if err := tx.First(&npt, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("non-project time", id)
			}
			return err
		}
		return tx.Delete(&npt).Error
	})
}
