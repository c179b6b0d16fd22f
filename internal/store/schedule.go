package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/opsdash-dev/opsdash/internal/models"
)

// recalculateMilestoneWindows derives the start/end window of every milestone
// in a project from the project start date and the planned-date ordering.
//
// Milestones sorted by planned date (ties broken by creation order, ascending
// id) form a contiguous chain: each window starts where the previous one ended,
// beginning at the project start date. A project without a start date has no
// anchor, so existing windows are left untouched.
//
// The walk is a pure function of (project start, planned dates); running it
// again without an intervening change writes the same values.
func recalculateMilestoneWindows(tx *gorm.DB, projectID uint) error {
	var project models.Project
	if err := tx.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if project.StartDate == nil {
		return nil
	}

	var milestones []models.Milestone
	if err := tx.Where("project_id = ?", projectID).
		Order("planned_date ASC, id ASC").
		Find(&milestones).Error; err != nil {
		return err
	}

	cursor := *project.StartDate
	for i := range milestones {
		m := &milestones[i]
		start := cursor
		end := m.PlannedDate
		if err := tx.Model(m).Updates(map[string]any{
			"start_date": start,
			"end_date":   end,
		}).Error; err != nil {
			return err
		}
		cursor = m.PlannedDate
	}
	return nil
}

// RecalculateSchedule recomputes every milestone window of a project in its
// own transaction. Milestone mutations already do this inline; this entry
// point exists for maintenance and direct invocation.
func RecalculateSchedule(gdb *gorm.DB, projectID uint) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		return recalculateMilestoneWindows(tx, projectID)
	})
}
