package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/opsdash-dev/opsdash/internal/models"
)

type CreateMilestoneInput struct {
	Name        string `json:"name" binding:"required"`
	PlannedDate string `json:"plannedDate" binding:"required"`
	ActualDate  string `json:"actualDate"`
	Status      string `json:"status"`
}

type UpdateMilestoneInput struct {
	Name        Optional[string] `json:"name"`
	PlannedDate Optional[string] `json:"plannedDate"`
	ActualDate  Optional[string] `json:"actualDate"`
	Status      Optional[string] `json:"status"`
}

type CreateAssignmentInput struct {
	EngineerID   uint `json:"engineerId"`
	HoursPerWeek int  `json:"hoursPerWeek"`
}

type UpdateAssignmentInput struct {
	HoursPerWeek Optional[int] `json:"hoursPerWeek"`
}

// CreateMilestone inserts the milestone, recomputes the project's milestone
// windows, and appends a "Milestone Added" audit row, all in one transaction.
func CreateMilestone(gdb *gorm.DB, projectID uint, in CreateMilestoneInput) (*models.Milestone, error) {
	if in.Name == "" {
		return nil, invalid("name", "name is required")
	}
	plannedDate, err := ParseDate("plannedDate", in.PlannedDate)
	if err != nil {
		return nil, err
	}
	actualDate, err := ParseDatePtr("actualDate", in.ActualDate)
	if err != nil {
		return nil, err
	}

	var milestone models.Milestone
	err = gdb.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, projectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("project", projectID)
			}
			return err
		}

		milestone = models.Milestone{
			ProjectID:   projectID,
			Name:        in.Name,
			PlannedDate: plannedDate,
			ActualDate:  actualDate,
			Status:      in.Status,
		}
		if milestone.Status == "" {
			milestone.Status = "pending"
		}
		if err := tx.Create(&milestone).Error; err != nil {
			return err
		}

		if err := recalculateMilestoneWindows(tx, projectID); err != nil {
			return err
		}

		actor := actorFor(tx, &project)
		return recordChanges(tx, projectID, actor, []fieldChange{{
			field:    "Milestone Added",
			newValue: fmt.Sprintf("%s (%s)", milestone.Name, in.PlannedDate),
		}})
	})
	if err != nil {
		return nil, err
	}

	return GetMilestone(gdb, milestone.ID)
}

func GetMilestone(gdb *gorm.DB, id uint) (*models.Milestone, error) {
	var milestone models.Milestone
	if err := gdb.Preload("Assignments.Engineer").First(&milestone, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("milestone", id)
		}
		return nil, err
	}
	return &milestone, nil
}

// UpdateMilestone applies a sparse patch, recomputes windows when the planned
// date was supplied, and appends audit rows labeled with the milestone's
// (possibly just-updated) name.
func UpdateMilestone(gdb *gorm.DB, id uint, in UpdateMilestoneInput) (*models.Milestone, error) {
	err := gdb.Transaction(func(tx *gorm.DB) error {
		var milestone models.Milestone
		if err := tx.First(&milestone, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("milestone", id)
			}
			return err
		}

		var changes []fieldChange
		label := func(field string) string {
			return fmt.Sprintf("Milestone %q %s", milestone.Name, field)
		}

		if name, ok := in.Name.Get(); ok {
			if name != milestone.Name {
				changes = append(changes, fieldChange{label("Name"), milestone.Name, name})
			}
			milestone.Name = name
		}

		plannedChanged := false
		if raw, ok := in.PlannedDate.Get(); ok {
			newDate, err := ParseDate("plannedDate", raw)
			if err != nil {
				return err
			}
			oldStr, newStr := FormatDate(milestone.PlannedDate), FormatDate(newDate)
			if oldStr != newStr {
				changes = append(changes, fieldChange{label("Planned Date"), oldStr, newStr})
			}
			milestone.PlannedDate = newDate
			plannedChanged = true
		}

		if raw, ok := in.ActualDate.Get(); ok {
			newDate, err := ParseDatePtr("actualDate", raw)
			if err != nil {
				return err
			}
			oldStr, newStr := FormatDatePtr(milestone.ActualDate), FormatDatePtr(newDate)
			if oldStr != newStr {
				changes = append(changes, fieldChange{label("Actual Date"), oldStr, newStr})
			}
			milestone.ActualDate = newDate
		}

		if status, ok := in.Status.Get(); ok {
			if status != milestone.Status {
				changes = append(changes, fieldChange{label("Status"), milestone.Status, status})
			}
			milestone.Status = status
		}

		if err := tx.Save(&milestone).Error; err != nil {
			return err
		}

		if plannedChanged {
			if err := recalculateMilestoneWindows(tx, milestone.ProjectID); err != nil {
				return err
			}
		}

		var project models.Project
		if err := tx.First(&project, milestone.ProjectID).Error; err != nil {
			return err
		}
		actor := actorFor(tx, &project)
		return recordChanges(tx, milestone.ProjectID, actor, changes)
	})
	if err != nil {
		return nil, err
	}

	return GetMilestone(gdb, id)
}

// DeleteMilestone cascades its assignments, recomputes the remaining windows,
// and appends a "Milestone Deleted" audit row.
func DeleteMilestone(gdb *gorm.DB, id uint) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		var milestone models.Milestone
		if err := tx.First(&milestone, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("milestone", id)
			}
			return err
		}

		var project models.Project
		if err := tx.First(&project, milestone.ProjectID).Error; err != nil {
			return err
		}

		if err := applyDeleteRules(tx, milestoneRules, id); err != nil {
			return err
		}
		if err := tx.Delete(&milestone).Error; err != nil {
			return err
		}

		if err := recalculateMilestoneWindows(tx, milestone.ProjectID); err != nil {
			return err
		}

		actor := actorFor(tx, &project)
		return recordChanges(tx, milestone.ProjectID, actor, []fieldChange{{
			field:    "Milestone Deleted",
			oldValue: fmt.Sprintf("%s (%s)", milestone.Name, FormatDate(milestone.PlannedDate)),
		}})
	})
}

// CreateAssignment commits an engineer to a milestone. The (milestone,
// engineer) pair is unique. Assignments carry no date information, so no
// schedule recompute happens here.
func CreateAssignment(gdb *gorm.DB, milestoneID uint, in CreateAssignmentInput) (*models.MilestoneAssignment, error) {
	if in.EngineerID == 0 {
		return nil, invalid("engineerId", "engineerId is required")
	}

	var assignment models.MilestoneAssignment
	err := gdb.Transaction(func(tx *gorm.DB) error {
		var milestone models.Milestone
		if err := tx.First(&milestone, milestoneID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("milestone", milestoneID)
			}
			return err
		}

		var engineer models.Engineer
		if err := tx.First(&engineer, in.EngineerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("engineer", in.EngineerID)
			}
			return err
		}

		var existing models.MilestoneAssignment
		err := tx.Where("milestone_id = ? AND engineer_id = ?", milestoneID, in.EngineerID).First(&existing).Error
		if err == nil {
			return invalid("engineerId", "Engineer already assigned to this milestone")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		assignment = models.MilestoneAssignment{
			MilestoneID:  milestoneID,
			EngineerID:   in.EngineerID,
			HoursPerWeek: in.HoursPerWeek,
		}
		return tx.Create(&assignment).Error
	})
	if err != nil {
		return nil, err
	}

	if err := gdb.Preload("Engineer").First(&assignment, assignment.ID).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func ListAssignments(gdb *gorm.DB, milestoneID uint) ([]models.MilestoneAssignment, error) {
	if _, err := GetMilestone(gdb, milestoneID); err != nil {
		return nil, err
	}
	var assignments []models.MilestoneAssignment
	if err := gdb.Preload("Engineer").Where("milestone_id = ?", milestoneID).Order("id ASC").Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func UpdateAssignment(gdb *gorm.DB, id uint, in UpdateAssignmentInput) (*models.MilestoneAssignment, error) {
	var assignment models.MilestoneAssignment

	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&assignment, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("milestone assignment", id)
			}
			return err
		}

		if hours, ok := in.HoursPerWeek.Get(); ok {
			assignment.HoursPerWeek = hours
		}
		return tx.Save(&assignment).Error
	})
	if err != nil {
		return nil, err
	}

	if err := gdb.Preload("Engineer").First(&assignment, assignment.ID).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func DeleteAssignment(gdb *gorm.DB, id uint) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		var assignment models.MilestoneAssignment
		if err := tx.First(&assignment, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("milestone assignment", id)
			}
			return err
		}
		return tx.Delete(&assignment).Error
	})
}
