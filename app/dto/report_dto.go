package dto

import "github.com/shopspring/decimal"

// WorkerMonthlyReportResponse lists one worker's records for a month with
// the month total.
type WorkerMonthlyReportResponse struct {
	Message     string          `json:"message"`
	WorkerCode  string          `json:"worker_code"`
	WorkerName  string          `json:"worker_name"`
	Month       string          `json:"month"`
	Items       []WageRecordDTO `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type WorkerTotalDTO struct {
	WorkerCode  string          `json:"worker_code"`
	WorkerName  string          `json:"worker_name"`
	RecordCount int64           `json:"record_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// SalarySummaryResponse aggregates all workers' wages for one month.
type SalarySummaryResponse struct {
	Message    string           `json:"message"`
	Month      string           `json:"month"`
	Items      []WorkerTotalDTO `json:"items"`
	GrandTotal decimal.Decimal  `json:"grand_total"`
}

type ProcessTotalDTO struct {
	ProcessCode   string          `json:"process_code"`
	ProcessName   string          `json:"process_name"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// ProcessWorkloadResponse aggregates quantity and amount per process for
// one month.
type ProcessWorkloadResponse struct {
	Message string            `json:"message"`
	Month   string            `json:"month"`
	Items   []ProcessTotalDTO `json:"items"`
}

// SystemStatsResponse carries the dashboard row counts.
type SystemStatsResponse struct {
	Message          string `json:"message"`
	WorkerCount      int64  `json:"worker_count"`
	MotorModelCount  int64  `json:"model_count"`
	ProcessCount     int64  `json:"process_count"`
	ProcessCat1Count int64  `json:"process_cat1_count"`
	ProcessCat2Count int64  `json:"process_cat2_count"`
	QuotaCount       int64  `json:"quota_count"`
	WageRecordCount  int64  `json:"salary_record_count"`
}
