package models

import "gorm.io/datatypes"

type Project struct {
	BaseModel

	Name                  string `gorm:"not null"`
	OwnerID               *uint  `gorm:"index"` // weak reference, cleared when the engineer is deleted
	Priority              string `gorm:"not null;default:'Medium'"`
	Status                string `gorm:"not null;default:'Planned'"`
	Progress              int    `gorm:"not null;default:0"`
	StartDate             *datatypes.Date
	EndDate               *datatypes.Date
	EstimatedHoursPerWeek int     `gorm:"not null;default:0"`
	Budget                float64 `gorm:"not null;default:0"`
	Spent                 float64 `gorm:"not null;default:0"` // running total, kept in step with Expenses
	Notes                 string
	Location              string `gorm:"size:50"` // Module Line, Pack Line, or Line Agnostic
	JiraKey               string `gorm:"size:50"` // legacy single key, superseded by JiraIssues

	// Relationships
	Owner         *Engineer             `gorm:"foreignKey:OwnerID"`
	Expenses      []Expense             `gorm:"foreignKey:ProjectID"`
	Milestones    []Milestone           `gorm:"foreignKey:ProjectID"`
	Tasks         []Task                `gorm:"foreignKey:ProjectID"`
	ChangeHistory []ChangeHistory       `gorm:"foreignKey:ProjectID"`
	JiraIssues    []ProjectJiraIssue    `gorm:"foreignKey:ProjectID"`
	YearlyBudgets []ProjectYearlyBudget `gorm:"foreignKey:ProjectID"`
}

type ProjectYearlyBudget struct {
	BaseModel

	ProjectID uint    `gorm:"not null;uniqueIndex:idx_project_year"`
	Year      int     `gorm:"not null;uniqueIndex:idx_project_year"`
	Amount    float64 `gorm:"not null;default:0"`
}

type ProjectJiraIssue struct {
	BaseModel

	ProjectID uint   `gorm:"not null;uniqueIndex:idx_project_jira_key"`
	JiraKey   string `gorm:"size:50;not null;uniqueIndex:idx_project_jira_key"`
}
