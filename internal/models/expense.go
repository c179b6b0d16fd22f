package models

import "gorm.io/datatypes"

type Expense struct {
	BaseModel

	ProjectID   uint           `gorm:"not null;index"`
	Date        datatypes.Date `gorm:"not null"`
	Description string         `gorm:"size:500;not null"`
	Amount      float64        `gorm:"not null"`
	Category    string         `gorm:"size:50"`
}
