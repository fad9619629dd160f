package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenEndedObsoleteDate marks a quota whose validity window has no planned
// end. Stored as a literal far-future date so window comparisons stay plain
// date comparisons.
var OpenEndedObsoleteDate = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// Quota prices one (model, cat1, cat2, process) combination for an inclusive
// validity window. The combination is not unique on its own; successive
// versions of the same combination carry disjoint windows. Overlaps are a
// data anomaly that resolution tolerates deterministically.
// Table: quotas
type Quota struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	ModelCode     string          `gorm:"size:50;not null;index:idx_quotas_combination,priority:1" json:"model_code"`
	Cat1Code      string          `gorm:"size:20;not null;index:idx_quotas_combination,priority:2;index:idx_quotas_cat1" json:"cat1_code"`
	Cat2Code      string          `gorm:"size:20;not null;index:idx_quotas_combination,priority:3" json:"cat2_code"`
	ProcessCode   string          `gorm:"size:20;not null;index:idx_quotas_combination,priority:4" json:"process_code"`
	UnitPrice     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unit_price"`
	EffectiveDate time.Time       `gorm:"type:date;not null" json:"effective_date"`
	ObsoleteDate  time.Time       `gorm:"type:date;not null" json:"obsolete_date"`
	CreatedAt     time.Time       `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
}

func (Quota) TableName() string {
	return "quotas"
}

// CombinationKey identifies the priced combination of a quota.
type CombinationKey struct {
	ModelCode   string `json:"model_code"`
	Cat1Code    string `json:"cat1_code"`
	Cat2Code    string `json:"cat2_code"`
	ProcessCode string `json:"process_code"`
}

func (q *Quota) Combination() CombinationKey {
	return CombinationKey{
		ModelCode:   q.ModelCode,
		Cat1Code:    q.Cat1Code,
		Cat2Code:    q.Cat2Code,
		ProcessCode: q.ProcessCode,
	}
}

type QuotaFilter struct {
	ModelCode   *string    `json:"model_code,omitempty"`
	Cat1Code    *string    `json:"cat1_code,omitempty"`
	Cat2Code    *string    `json:"cat2_code,omitempty"`
	ProcessCode *string    `json:"process_code,omitempty"`
	ValidOn     *time.Time `json:"valid_on,omitempty"`
}
