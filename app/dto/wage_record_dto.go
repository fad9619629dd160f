package dto

import "github.com/shopspring/decimal"

// CreateBatchRecordsRequest creates one wage record per quota id, all for
// the same worker, quantity and date. A single-quota creation is a batch of
// one.
type CreateBatchRecordsRequest struct {
	WorkerCode string          `json:"worker_code" validate:"required"`
	QuotaIDs   []uint          `json:"quota_ids" validate:"required,min=1"`
	Quantity   decimal.Decimal `json:"quantity" validate:"required"`
	RecordDate string          `json:"record_date" validate:"required"`
}

// CreatedRecordDTO reports one successfully created record of a batch.
type CreatedRecordDTO struct {
	RecordID  uint            `json:"record_id"`
	QuotaID   uint            `json:"quota_id"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  decimal.Decimal `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
}

// BatchItemErrorDTO reports one failed item of a batch; it never fails the
// batch as a whole.
type BatchItemErrorDTO struct {
	QuotaID uint   `json:"quota_id"`
	Outcome string `json:"outcome"`
	Reason  string `json:"reason"`
}

type CreateBatchRecordsResponse struct {
	Message      string              `json:"message"`
	BatchID      string              `json:"batch_id"`
	CreatedCount int                 `json:"created_count"`
	ErrorCount   int                 `json:"error_count"`
	Records      []CreatedRecordDTO  `json:"records"`
	Errors       []BatchItemErrorDTO `json:"errors"`
}

// WageRecordDTO is a wage record joined with the descriptive fields of its
// quota combination.
type WageRecordDTO struct {
	ID          uint            `json:"id"`
	WorkerCode  string          `json:"worker_code"`
	WorkerName  string          `json:"worker_name"`
	QuotaID     uint            `json:"quota_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
	RecordDate  string          `json:"record_date"`
	ModelCode   string          `json:"model_code"`
	ModelName   string          `json:"model_name"`
	Cat1Code    string          `json:"cat1_code"`
	Cat1Name    string          `json:"cat1_name"`
	Cat2Code    string          `json:"cat2_code"`
	Cat2Name    string          `json:"cat2_name"`
	ProcessCode string          `json:"process_code"`
	ProcessName string          `json:"process_name"`
	CreatedAt   string          `json:"created_at"`
}

type ListWageRecordsResponse struct {
	Message string          `json:"message"`
	Items   []WageRecordDTO `json:"items"`
}

// UpdateWageRecordRequest changes a record's quota, quantity or date. Any
// change re-resolves the quota at the record date and re-snapshots price and
// amount.
type UpdateWageRecordRequest struct {
	QuotaID    *uint            `json:"quota_id,omitempty"`
	Quantity   *decimal.Decimal `json:"quantity,omitempty"`
	RecordDate *string          `json:"record_date,omitempty"`
}

type UpdateWageRecordResponse struct {
	Message string            `json:"message"`
	Record  *CreatedRecordDTO `json:"record"`
}

type DeleteWageRecordResponse struct {
	Message  string `json:"message"`
	RecordID uint   `json:"record_id"`
}
