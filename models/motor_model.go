package models

import "time"

// MotorModel is a motor model that quotas are priced against.
// Model codes conventionally carry a numeric prefix ("10-XYZ"); the matrix
// row ordering depends on it.
// Table: motor_models
type MotorModel struct {
	ModelCode string    `gorm:"primaryKey;size:50" json:"model_code"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Aliases   *string   `gorm:"size:255" json:"aliases,omitempty"`
	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (MotorModel) TableName() string {
	return "motor_models"
}

type MotorModelFilter struct {
	Name *string `json:"name,omitempty"`
}
