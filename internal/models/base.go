package models

import "time"

// BaseModel is gorm.Model without soft deletes. Cascade and detach rules in the
// store perform real deletes, and unique indexes must not see tombstoned rows.
type BaseModel struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
