package models

type Task struct {
	BaseModel

	ProjectID    uint `gorm:"not null;uniqueIndex:idx_project_engineer"`
	EngineerID   uint `gorm:"not null;uniqueIndex:idx_project_engineer"`
	HoursPerWeek int  `gorm:"not null"`

	// Relationships
	Engineer Engineer `gorm:"foreignKey:EngineerID"`
}
