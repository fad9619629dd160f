package models

import "time"

// ProcessCat2 is a process category, the sub-grouping of process types
// within a work-section.
// Table: process_cat2
type ProcessCat2 struct {
	Cat2Code  string    `gorm:"primaryKey;size:20" json:"cat2_code"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (ProcessCat2) TableName() string {
	return "process_cat2"
}

type ProcessCat2Filter struct {
	Name *string `json:"name,omitempty"`
}
