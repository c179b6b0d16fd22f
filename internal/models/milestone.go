package models

import "gorm.io/datatypes"

type Milestone struct {
	BaseModel

	ProjectID   uint           `gorm:"not null;index"`
	Name        string         `gorm:"not null"`
	PlannedDate datatypes.Date `gorm:"not null"`
	ActualDate  *datatypes.Date
	Status      string `gorm:"not null;default:'pending'"`

	// StartDate and EndDate are derived from the project start date and the
	// planned dates of sibling milestones. They are never accepted as input.
	StartDate    *datatypes.Date
	EndDate      *datatypes.Date
	HoursPerWeek *int

	// Relationships
	Assignments []MilestoneAssignment `gorm:"foreignKey:MilestoneID"`
}

type MilestoneAssignment struct {
	BaseModel

	MilestoneID  uint `gorm:"not null;uniqueIndex:idx_milestone_engineer"`
	EngineerID   uint `gorm:"not null;uniqueIndex:idx_milestone_engineer"`
	HoursPerWeek int  `gorm:"not null"`

	// Relationships
	Engineer Engineer `gorm:"foreignKey:EngineerID"`
}
