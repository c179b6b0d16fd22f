package models

import "time"

// ChangeHistory is append-only. Rows are never updated and only removed when
// their project is deleted.
type ChangeHistory struct {
	BaseModel

	ProjectID uint      `gorm:"not null;index"`
	Field     string    `gorm:"size:100;not null"`
	OldValue  string    `gorm:"size:500"`
	NewValue  string    `gorm:"size:500"`
	ChangedAt time.Time `gorm:"autoCreateTime"`
	ChangedBy string    `gorm:"size:100"`
}

func (ChangeHistory) TableName() string { return "change_history" }
