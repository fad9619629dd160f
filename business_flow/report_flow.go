package businessflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/dahe-motor/piecerate/app/dto"
	"github.com/dahe-motor/piecerate/models"
	"github.com/dahe-motor/piecerate/repository"
	"github.com/dahe-motor/piecerate/utils"
)

// ReportFlow aggregates wage records into monthly payroll views. Totals sum
// the snapshotted amounts, so reports stay stable under later quota edits.
type ReportFlow interface {
	WorkerMonthly(ctx context.Context, workerCode, month string) (*dto.WorkerMonthlyReportResponse, error)
	SalarySummary(ctx context.Context, month string) (*dto.SalarySummaryResponse, error)
	ExportSalarySummary(ctx context.Context, month string) (string, []byte, error)
	ProcessWorkload(ctx context.Context, month string) (*dto.ProcessWorkloadResponse, error)
	Stats(ctx context.Context) (*dto.SystemStatsResponse, error)
}

type ReportFlowImpl struct {
	wageRepo   repository.WageRecordRepository
	workerRepo repository.WorkerRepository
	statsRepo  repository.StatsRepository
}

func NewReportFlow(
	wageRepo repository.WageRecordRepository,
	workerRepo repository.WorkerRepository,
	statsRepo repository.StatsRepository,
) ReportFlow {
	return &ReportFlowImpl{wageRepo: wageRepo, workerRepo: workerRepo, statsRepo: statsRepo}
}

func (f *ReportFlowImpl) WorkerMonthly(ctx context.Context, workerCode, month string) (*dto.WorkerMonthlyReportResponse, error) {
	workerCode = strings.TrimSpace(workerCode)
	month = strings.TrimSpace(month)
	if _, err := utils.ParseMonth(month); err != nil {
		return nil, NewBusinessError("REPORT_MONTH_INVALID", "Month must be YYYY-MM", ErrMonthMalformed)
	}

	worker, err := f.workerRepo.ByCode(ctx, workerCode)
	if err != nil {
		return nil, NewBusinessError("REPORT_WORKER_LOOKUP_FAILED", "Failed to look up worker", err)
	}
	if worker == nil {
		return nil, NewBusinessError("REPORT_WORKER_NOT_FOUND", "Worker not found", ErrWorkerNotFound)
	}

	details, err := f.wageRepo.ListDetailed(ctx, models.WageRecordFilter{
		WorkerCode: &workerCode,
		Month:      &month,
	}, 0, 0)
	if err != nil {
		return nil, NewBusinessError("REPORT_RECORDS_LOAD_FAILED", "Failed to load wage records", err)
	}

	items := make([]dto.WageRecordDTO, 0, len(details))
	total := decimal.Zero
	for _, d := range details {
		items = append(items, toWageRecordDTO(d))
		total = total.Add(d.Amount)
	}

	return &dto.WorkerMonthlyReportResponse{
		Message:     "Worker monthly report retrieved successfully",
		WorkerCode:  worker.WorkerCode,
		WorkerName:  worker.Name,
		Month:       month,
		Items:       items,
		TotalAmount: total,
	}, nil
}

func (f *ReportFlowImpl) SalarySummary(ctx context.Context, month string) (*dto.SalarySummaryResponse, error) {
	month = strings.TrimSpace(month)
	start, end, err := utils.MonthWindow(month)
	if err != nil {
		return nil, NewBusinessError("REPORT_MONTH_INVALID", "Month must be YYYY-MM", ErrMonthMalformed)
	}

	totals, err := f.wageRepo.SummaryByMonth(ctx, start, end)
	if err != nil {
		return nil, NewBusinessError("REPORT_SUMMARY_FAILED", "Failed to build salary summary", err)
	}

	items := make([]dto.WorkerTotalDTO, 0, len(totals))
	grand := decimal.Zero
	for _, t := range totals {
		items = append(items, dto.WorkerTotalDTO{
			WorkerCode:  t.WorkerCode,
			WorkerName:  t.WorkerName,
			RecordCount: t.RecordCount,
			TotalAmount: t.TotalAmount,
		})
		grand = grand.Add(t.TotalAmount)
	}

	return &dto.SalarySummaryResponse{
		Message:    "Salary summary retrieved successfully",
		Month:      month,
		Items:      items,
		GrandTotal: grand,
	}, nil
}

// ProcessWorkload totals quantity and amount per process for one month,
// answering which stages carried the shop floor's output.
func (f *ReportFlowImpl) ProcessWorkload(ctx context.Context, month string) (*dto.ProcessWorkloadResponse, error) {
	month = strings.TrimSpace(month)
	start, end, err := utils.MonthWindow(month)
	if err != nil {
		return nil, NewBusinessError("REPORT_MONTH_INVALID", "Month must be YYYY-MM", ErrMonthMalformed)
	}

	totals, err := f.wageRepo.WorkloadByMonth(ctx, start, end)
	if err != nil {
		return nil, NewBusinessError("REPORT_WORKLOAD_FAILED", "Failed to build process workload report", err)
	}

	items := make([]dto.ProcessTotalDTO, 0, len(totals))
	for _, t := range totals {
		items = append(items, dto.ProcessTotalDTO{
			ProcessCode:   t.ProcessCode,
			ProcessName:   t.ProcessName,
			TotalQuantity: t.TotalQuantity,
			TotalAmount:   t.TotalAmount,
		})
	}

	return &dto.ProcessWorkloadResponse{
		Message: "Process workload report retrieved successfully",
		Month:   month,
		Items:   items,
	}, nil
}

// Stats returns the dashboard row counts.
func (f *ReportFlowImpl) Stats(ctx context.Context) (*dto.SystemStatsResponse, error) {
	counts, err := f.statsRepo.Counts(ctx)
	if err != nil {
		return nil, NewBusinessError("STATS_FAILED", "Failed to load system statistics", err)
	}

	return &dto.SystemStatsResponse{
		Message:          "System statistics retrieved successfully",
		WorkerCount:      counts.WorkerCount,
		MotorModelCount:  counts.MotorModelCount,
		ProcessCount:     counts.ProcessCount,
		ProcessCat1Count: counts.ProcessCat1Count,
		ProcessCat2Count: counts.ProcessCat2Count,
		QuotaCount:       counts.QuotaCount,
		WageRecordCount:  counts.WageRecordCount,
	}, nil
}

// ExportSalarySummary renders the monthly summary as a workbook for the
// payroll office. Returns the suggested filename and the file bytes.
func (f *ReportFlowImpl) ExportSalarySummary(ctx context.Context, month string) (string, []byte, error) {
	summary, err := f.SalarySummary(ctx, month)
	if err != nil {
		return "", nil, err
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	sheet := "Salary Summary"
	xl.SetSheetName(xl.GetSheetName(0), sheet)

	header := []string{"worker_code", "worker_name", "record_count", "total_amount"}
	_ = xl.SetSheetRow(sheet, "A1", &header)

	for ri, item := range summary.Items {
		record := []interface{}{
			item.WorkerCode,
			item.WorkerName,
			item.RecordCount,
			item.TotalAmount.StringFixed(2),
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, ri+2)
		_ = xl.SetSheetRow(sheet, cellRef, &record)
	}

	totalRow := []interface{}{"total", "", "", summary.GrandTotal.StringFixed(2)}
	cellRef, _ := excelize.CoordinatesToCellName(1, len(summary.Items)+2)
	_ = xl.SetSheetRow(sheet, cellRef, &totalRow)

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return "", nil, NewBusinessError("REPORT_EXCEL_WRITE_FAILED", "Failed to write Excel file", err)
	}

	filename := fmt.Sprintf("salary_summary_%s.xlsx", summary.Month)
	return filename, buf.Bytes(), nil
}
