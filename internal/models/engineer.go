package models

type Engineer struct {
	BaseModel

	Name       string `gorm:"uniqueIndex;not null"`
	Role       string
	TotalHours int `gorm:"not null;default:40"` // weekly hour capacity

	// Relationships
	NonProjectTime       []EngineerNonProjectTime `gorm:"foreignKey:EngineerID"`
	Tasks                []Task                   `gorm:"foreignKey:EngineerID"`
	MilestoneAssignments []MilestoneAssignment    `gorm:"foreignKey:EngineerID"`
	OwnedProjects        []Project                `gorm:"foreignKey:OwnerID"`
}

type EngineerNonProjectTime struct {
	BaseModel

	EngineerID uint   `gorm:"not null;index"`
	Type       string `gorm:"not null"` // e.g. "Line Support", "Meetings"
	Hours      int    `gorm:"not null"`
}

func (EngineerNonProjectTime) TableName() string { return "engineer_non_project_time" }
