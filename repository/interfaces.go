// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/dahe-motor/piecerate/models"
	"github.com/shopspring/decimal"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	Save(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}

// QuotaDetail is a quota row joined with the display names of its
// combination members. Names are empty when the dictionary entry is missing
// rather than failing the join.
type QuotaDetail struct {
	ID            uint            `json:"id"`
	ModelCode     string          `json:"model_code"`
	ModelName     string          `json:"model_name"`
	Cat1Code      string          `json:"cat1_code"`
	Cat1Name      string          `json:"cat1_name"`
	Cat2Code      string          `json:"cat2_code"`
	Cat2Name      string          `json:"cat2_name"`
	ProcessCode   string          `json:"process_code"`
	ProcessName   string          `json:"process_name"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	EffectiveDate time.Time       `json:"effective_date"`
	ObsoleteDate  time.Time       `json:"obsolete_date"`
}

// QuotaRepository is the queryable quota store behind the catalog.
type QuotaRepository interface {
	Repository[models.Quota, models.QuotaFilter]
	ByFilter(ctx context.Context, filter models.QuotaFilter, orderBy string, limit, offset int) ([]*models.Quota, error)
	ListAllDetailed(ctx context.Context) ([]*QuotaDetail, error)
	ListByCat1Detailed(ctx context.Context, cat1Code string) ([]*QuotaDetail, error)
	ListByKeyDetailed(ctx context.Context, key models.CombinationKey) ([]*QuotaDetail, error)
	GetByIDDetailed(ctx context.Context, id uint) (*QuotaDetail, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

// WageRecordDetail is a wage record joined with the descriptive fields of
// its quota's combination, for listings and reports.
type WageRecordDetail struct {
	ID          uint            `json:"id"`
	WorkerCode  string          `json:"worker_code"`
	WorkerName  string          `json:"worker_name"`
	QuotaID     uint            `json:"quota_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
	RecordDate  time.Time       `json:"record_date"`
	ModelCode   string          `json:"model_code"`
	ModelName   string          `json:"model_name"`
	Cat1Code    string          `json:"cat1_code"`
	Cat1Name    string          `json:"cat1_name"`
	Cat2Code    string          `json:"cat2_code"`
	Cat2Name    string          `json:"cat2_name"`
	ProcessCode string          `json:"process_code"`
	ProcessName string          `json:"process_name"`
	CreatedAt   time.Time       `json:"created_at"`
}

// WorkerMonthTotal is one worker's aggregate for a month.
type WorkerMonthTotal struct {
	WorkerCode  string          `json:"worker_code"`
	WorkerName  string          `json:"worker_name"`
	RecordCount int64           `json:"record_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// ProcessMonthTotal is one process's workload aggregate for a month. The
// process is reached through each record's quota, so records whose quota
// was since deleted fall out of the report.
type ProcessMonthTotal struct {
	ProcessCode   string          `json:"process_code"`
	ProcessName   string          `json:"process_name"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// WageRecordRepository is the record store the batch creator writes to.
type WageRecordRepository interface {
	Repository[models.WageRecord, models.WageRecordFilter]
	ListDetailed(ctx context.Context, filter models.WageRecordFilter, limit, offset int) ([]*WageRecordDetail, error)
	SummaryByMonth(ctx context.Context, monthStart, monthEnd time.Time) ([]*WorkerMonthTotal, error)
	WorkloadByMonth(ctx context.Context, monthStart, monthEnd time.Time) ([]*ProcessMonthTotal, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

// SystemCounts holds the row counts of every domain table.
type SystemCounts struct {
	WorkerCount      int64 `json:"worker_count"`
	MotorModelCount  int64 `json:"model_count"`
	ProcessCount     int64 `json:"process_count"`
	ProcessCat1Count int64 `json:"process_cat1_count"`
	ProcessCat2Count int64 `json:"process_cat2_count"`
	QuotaCount       int64 `json:"quota_count"`
	WageRecordCount  int64 `json:"salary_record_count"`
}

// StatsRepository serves the dashboard counts.
type StatsRepository interface {
	Counts(ctx context.Context) (*SystemCounts, error)
}

// WorkerRepository defines operations for workers
type WorkerRepository interface {
	ByCode(ctx context.Context, code string) (*models.Worker, error)
	List(ctx context.Context, filter models.WorkerFilter, limit, offset int) ([]*models.Worker, error)
	Save(ctx context.Context, worker *models.Worker) error
	Update(ctx context.Context, worker *models.Worker) error
	Delete(ctx context.Context, code string) (bool, error)
}

// MotorModelRepository defines operations for motor models
type MotorModelRepository interface {
	ByCode(ctx context.Context, code string) (*models.MotorModel, error)
	List(ctx context.Context, filter models.MotorModelFilter, limit, offset int) ([]*models.MotorModel, error)
	Save(ctx context.Context, model *models.MotorModel) error
	Update(ctx context.Context, model *models.MotorModel) error
	Delete(ctx context.Context, code string) (bool, error)
}

// ProcessRepository defines operations for processes
type ProcessRepository interface {
	ByCode(ctx context.Context, code string) (*models.Process, error)
	List(ctx context.Context, filter models.ProcessFilter, limit, offset int) ([]*models.Process, error)
	Save(ctx context.Context, process *models.Process) error
	Update(ctx context.Context, process *models.Process) error
	Delete(ctx context.Context, code string) (bool, error)
}

// ProcessCat1Repository defines operations for work-section categories
type ProcessCat1Repository interface {
	ByCode(ctx context.Context, code string) (*models.ProcessCat1, error)
	List(ctx context.Context, filter models.ProcessCat1Filter, limit, offset int) ([]*models.ProcessCat1, error)
	Save(ctx context.Context, cat *models.ProcessCat1) error
	Update(ctx context.Context, cat *models.ProcessCat1) error
	Delete(ctx context.Context, code string) (bool, error)
}

// ProcessCat2Repository defines operations for process categories
type ProcessCat2Repository interface {
	ByCode(ctx context.Context, code string) (*models.ProcessCat2, error)
	List(ctx context.Context, filter models.ProcessCat2Filter, limit, offset int) ([]*models.ProcessCat2, error)
	Save(ctx context.Context, cat *models.ProcessCat2) error
	Update(ctx context.Context, cat *models.ProcessCat2) error
	Delete(ctx context.Context, code string) (bool, error)
}
