package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WageRecord is a priced unit of work performed by a worker on a date.
// UnitPrice and Amount are snapshotted from the resolved quota at creation
// time; later quota changes never alter existing records. Records created in
// one batch share a BatchID.
// Table: wage_records
type WageRecord struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	WorkerCode string          `gorm:"size:20;not null;index:idx_wage_records_worker" json:"worker_code"`
	QuotaID    uint            `gorm:"not null;index:idx_wage_records_quota" json:"quota_id"`
	Quantity   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unit_price"`
	Amount     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	RecordDate time.Time       `gorm:"type:date;not null;index:idx_wage_records_date" json:"record_date"`
	BatchID    uuid.UUID       `gorm:"type:uuid;not null" json:"batch_id"`
	CreatedAt  time.Time       `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
}

func (WageRecord) TableName() string {
	return "wage_records"
}

type WageRecordFilter struct {
	WorkerCode *string    `json:"worker_code,omitempty"`
	QuotaID    *uint      `json:"quota_id,omitempty"`
	RecordDate *time.Time `json:"record_date,omitempty"`
	Month      *string    `json:"month,omitempty"` // YYYY-MM
	BatchID    *uuid.UUID `json:"batch_id,omitempty"`
}
