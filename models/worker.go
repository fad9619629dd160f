package models

import "time"

// Worker is a factory worker identified by a short worker code.
// Table: workers
type Worker struct {
	WorkerCode string    `gorm:"primaryKey;size:20" json:"worker_code"`
	Name       string    `gorm:"size:50;not null" json:"name"`
	CreatedAt  time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt  time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Worker) TableName() string {
	return "workers"
}

type WorkerFilter struct {
	Name *string `json:"name,omitempty"`
}
