package models

import "time"

// Process is a single production process (drilling, painting, winding a
// specific coil) priced by quotas.
// Table: processes
type Process struct {
	ProcessCode string    `gorm:"primaryKey;size:20" json:"process_code"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description *string   `gorm:"size:500" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt   time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Process) TableName() string {
	return "processes"
}

type ProcessFilter struct {
	Name *string `json:"name,omitempty"`
}
