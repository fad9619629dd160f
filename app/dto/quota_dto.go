package dto

import "github.com/shopspring/decimal"

// QuotaDTO is the wire representation of one quota version with the display
// names of its combination. Dates are YYYY-MM-DD.
type QuotaDTO struct {
	QuotaID       uint            `json:"quota_id"`
	ModelCode     string          `json:"model_code"`
	ModelName     string          `json:"model_name"`
	Cat1Code      string          `json:"cat1_code"`
	Cat1Name      string          `json:"cat1_name"`
	Cat2Code      string          `json:"cat2_code"`
	Cat2Name      string          `json:"cat2_name"`
	ProcessCode   string          `json:"process_code"`
	ProcessName   string          `json:"process_name"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	EffectiveDate string          `json:"effective_date"`
	ObsoleteDate  string          `json:"obsolete_date"`
}

// ResolveQuotaRequest resolves either an explicit quota id or a full
// combination key against a record date.
type ResolveQuotaRequest struct {
	QuotaID     *uint   `json:"quota_id,omitempty"`
	ModelCode   *string `json:"model_code,omitempty"`
	Cat1Code    *string `json:"cat1_code,omitempty"`
	Cat2Code    *string `json:"cat2_code,omitempty"`
	ProcessCode *string `json:"process_code,omitempty"`
	RecordDate  string  `json:"record_date" validate:"required"`
}

type ResolveQuotaResponse struct {
	Outcome string `json:"outcome"`
	Message string `json:"message"`
	// Quota is present when outcome is "found".
	Quota *QuotaDTO `json:"quota,omitempty"`
	// EarliestEffectiveDate is present when outcome is "not_yet_effective".
	EarliestEffectiveDate *string `json:"earliest_effective_date,omitempty"`
	// ObsoleteDate and, when a successor exists, Replacement are present
	// when outcome is "obsolete".
	ObsoleteDate *string   `json:"obsolete_date,omitempty"`
	Replacement  *QuotaDTO `json:"replacement,omitempty"`
}

type AxisEntryDTO struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type MatrixCellDTO struct {
	QuotaID   uint            `json:"quota_id"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// MatrixSectionDTO is one process-category section of the price matrix.
// Cells is keyed by model code, then process code; missing pairs are
// absent, never zero.
type MatrixSectionDTO struct {
	Cat2Code string                              `json:"cat2_code"`
	Cat2Name string                              `json:"cat2_name"`
	Rows     []AxisEntryDTO                      `json:"rows"`
	Columns  []AxisEntryDTO                      `json:"columns"`
	Cells    map[string]map[string]MatrixCellDTO `json:"cells"`
}

type GetQuotaMatrixResponse struct {
	Message       string             `json:"message"`
	Cat1Code      string             `json:"cat1_code"`
	EffectiveDate string             `json:"effective_date"`
	Sections      []MatrixSectionDTO `json:"sections"`
}

type CombinationPairDTO struct {
	Cat1Code string `json:"cat1_code"`
	Cat1Name string `json:"cat1_name"`
	Cat2Code string `json:"cat2_code"`
	Cat2Name string `json:"cat2_name"`
}

type ListMatrixCombinationsResponse struct {
	Message string               `json:"message"`
	Items   []CombinationPairDTO `json:"items"`
}

type ListEffectiveDatesResponse struct {
	Message string   `json:"message"`
	Dates   []string `json:"dates"`
}

type OptionDTO struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type CatPairDTO struct {
	Cat1Code string `json:"cat1_code"`
	Cat2Code string `json:"cat2_code"`
}

// ModelOptionDTO annotates a model option with every (cat1, cat2) pair it
// has quotas under.
type ModelOptionDTO struct {
	Value string       `json:"value"`
	Label string       `json:"label"`
	Pairs []CatPairDTO `json:"pairs"`
}

// GetQuotaOptionsResponse carries the full cascade option index plus the
// flat quota rows it was derived from.
type GetQuotaOptionsResponse struct {
	Message      string                 `json:"message"`
	RecordDate   *string                `json:"record_date,omitempty"`
	Cat1Options  []OptionDTO            `json:"cat1_options"`
	Cat2ByCat1   map[string][]OptionDTO `json:"cat2_by_cat1"`
	ModelOptions []ModelOptionDTO       `json:"model_options"`
	Combinations []QuotaDTO             `json:"combinations"`
}

// CreateQuotaRequest creates one quota version. ObsoleteDate omitted means
// open-ended.
type CreateQuotaRequest struct {
	ModelCode     string          `json:"model_code" validate:"required"`
	Cat1Code      string          `json:"cat1_code" validate:"required"`
	Cat2Code      string          `json:"cat2_code" validate:"required"`
	ProcessCode   string          `json:"process_code" validate:"required"`
	UnitPrice     decimal.Decimal `json:"unit_price" validate:"required"`
	EffectiveDate string          `json:"effective_date" validate:"required"`
	ObsoleteDate  *string         `json:"obsolete_date,omitempty"`
}

type CreateQuotaResponse struct {
	Message string    `json:"message"`
	Quota   *QuotaDTO `json:"quota"`
	// Warnings lists validity-window overlaps introduced by this version.
	Warnings []string `json:"warnings,omitempty"`
}

type UpdateQuotaRequest struct {
	UnitPrice     *decimal.Decimal `json:"unit_price,omitempty"`
	EffectiveDate *string          `json:"effective_date,omitempty"`
	ObsoleteDate  *string          `json:"obsolete_date,omitempty"`
}

type UpdateQuotaResponse struct {
	Message  string    `json:"message"`
	Quota    *QuotaDTO `json:"quota"`
	Warnings []string  `json:"warnings,omitempty"`
}

type ListQuotasResponse struct {
	Message string     `json:"message"`
	Items   []QuotaDTO `json:"items"`
}

type GetQuotaResponse struct {
	Message string    `json:"message"`
	Quota   *QuotaDTO `json:"quota"`
}

type DeleteQuotaResponse struct {
	Message string `json:"message"`
	QuotaID uint   `json:"quota_id"`
}
