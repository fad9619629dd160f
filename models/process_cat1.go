package models

import "time"

// ProcessCat1 is a work-section category, the top-level grouping of
// production stages (machining, assembly, winding).
// Table: process_cat1
type ProcessCat1 struct {
	Cat1Code  string    `gorm:"primaryKey;size:20" json:"cat1_code"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (ProcessCat1) TableName() string {
	return "process_cat1"
}

type ProcessCat1Filter struct {
	Name *string `json:"name,omitempty"`
}
