package businessflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dahe-motor/piecerate/app/dto"
	"github.com/dahe-motor/piecerate/models"
	"github.com/dahe-motor/piecerate/repository"
	"github.com/dahe-motor/piecerate/utils"
)

// WageRecordFlow creates, lists and maintains wage records. Batch creation
// resolves each quota independently against the record date and snapshots
// the resolved price into the record; unresolvable items are reported, not
// fatal.
type WageRecordFlow interface {
	CreateBatch(ctx context.Context, req *dto.CreateBatchRecordsRequest) (*dto.CreateBatchRecordsResponse, error)
	List(ctx context.Context, filter models.WageRecordFilter, limit, offset int) (*dto.ListWageRecordsResponse, error)
	Update(ctx context.Context, recordID uint, req *dto.UpdateWageRecordRequest) (*dto.UpdateWageRecordResponse, error)
	Delete(ctx context.Context, recordID uint) (*dto.DeleteWageRecordResponse, error)
}

type WageRecordFlowImpl struct {
	wageRepo   repository.WageRecordRepository
	workerRepo repository.WorkerRepository
	quotaRepo  repository.QuotaRepository
}

func NewWageRecordFlow(
	wageRepo repository.WageRecordRepository,
	workerRepo repository.WorkerRepository,
	quotaRepo repository.QuotaRepository,
) WageRecordFlow {
	return &WageRecordFlowImpl{
		wageRepo:   wageRepo,
		workerRepo: workerRepo,
		quotaRepo:  quotaRepo,
	}
}

// CreateBatch validates the shared fields once, then processes items
// independently. Shared-field failures reject the whole batch before any
// write; per-item resolution failures land in the error list while the
// rest of the batch proceeds.
func (f *WageRecordFlowImpl) CreateBatch(ctx context.Context, req *dto.CreateBatchRecordsRequest) (*dto.CreateBatchRecordsResponse, error) {
	if len(req.QuotaIDs) == 0 {
		return nil, NewBusinessError("BATCH_QUOTA_IDS_EMPTY", "At least one quota id is required", ErrQuotaIDListEmpty)
	}
	if req.Quantity.IsNegative() {
		return nil, NewBusinessError("BATCH_QUANTITY_NEGATIVE", "Quantity must not be negative", ErrQuantityNegative)
	}

	recordDate, err := utils.ParseDate(strings.TrimSpace(req.RecordDate))
	if err != nil {
		return nil, NewBusinessError("BATCH_RECORD_DATE_INVALID", "Record date must be YYYY-MM-DD", ErrRecordDateMalformed)
	}

	worker, err := f.workerRepo.ByCode(ctx, strings.TrimSpace(req.WorkerCode))
	if err != nil {
		return nil, NewBusinessError("BATCH_WORKER_LOOKUP_FAILED", "Failed to look up worker", err)
	}
	if worker == nil {
		return nil, NewBusinessError("BATCH_WORKER_NOT_FOUND", "Worker not found", ErrWorkerNotFound)
	}

	// One catalog snapshot serves every item, including replacement
	// searches across combinations.
	details, err := f.quotaRepo.ListAllDetailed(ctx)
	if err != nil {
		return nil, NewBusinessError("BATCH_CATALOG_LOAD_FAILED", "Failed to load quota catalog", err)
	}
	catalog := catalogFromDetails(details)
	logOverlapWarnings(catalog)
	resolver := NewResolver(catalog)

	batchID := uuid.New()
	resp := &dto.CreateBatchRecordsResponse{
		BatchID: batchID.String(),
		Records: make([]dto.CreatedRecordDTO, 0, len(req.QuotaIDs)),
		Errors:  make([]dto.BatchItemErrorDTO, 0),
	}

	for _, quotaID := range req.QuotaIDs {
		res := resolver.ResolveByID(quotaID, recordDate)
		if res.Outcome != ResolutionFound {
			resp.Errors = append(resp.Errors, dto.BatchItemErrorDTO{
				QuotaID: quotaID,
				Outcome: string(res.Outcome),
				Reason:  toResolveResponse(res).Message,
			})
			continue
		}

		record := &models.WageRecord{
			WorkerCode: worker.WorkerCode,
			QuotaID:    quotaID,
			Quantity:   req.Quantity,
			UnitPrice:  res.Quota.UnitPrice,
			Amount:     req.Quantity.Mul(res.Quota.UnitPrice),
			RecordDate: recordDate,
			BatchID:    batchID,
		}
		// Each item writes in its own transaction; a failed insert rolls
		// back alone and earlier items stay committed.
		saveErr := f.wageRepo.WithTransaction(ctx, func(txCtx context.Context) error {
			return f.wageRepo.Save(txCtx, record)
		})
		if saveErr != nil {
			resp.Errors = append(resp.Errors, dto.BatchItemErrorDTO{
				QuotaID: quotaID,
				Outcome: "write_failed",
				Reason:  "Failed to save wage record",
			})
			continue
		}

		resp.Records = append(resp.Records, dto.CreatedRecordDTO{
			RecordID:  record.ID,
			QuotaID:   quotaID,
			UnitPrice: record.UnitPrice,
			Quantity:  record.Quantity,
			Amount:    record.Amount,
		})
	}

	resp.CreatedCount = len(resp.Records)
	resp.ErrorCount = len(resp.Errors)
	resp.Message = fmt.Sprintf("%d records created, %d failed", resp.CreatedCount, resp.ErrorCount)
	return resp, nil
}

func (f *WageRecordFlowImpl) List(ctx context.Context, filter models.WageRecordFilter, limit, offset int) (*dto.ListWageRecordsResponse, error) {
	if filter.Month != nil {
		if _, err := utils.ParseMonth(*filter.Month); err != nil {
			return nil, NewBusinessError("RECORDS_MONTH_INVALID", "Month must be YYYY-MM", ErrMonthMalformed)
		}
	}

	details, err := f.wageRepo.ListDetailed(ctx, filter, limit, offset)
	if err != nil {
		return nil, NewBusinessError("RECORDS_LIST_FAILED", "Failed to list wage records", err)
	}

	items := make([]dto.WageRecordDTO, 0, len(details))
	for _, d := range details {
		items = append(items, toWageRecordDTO(d))
	}
	return &dto.ListWageRecordsResponse{
		Message: "Wage records retrieved successfully",
		Items:   items,
	}, nil
}

// Update re-resolves the record's quota at the (possibly new) record date
// and re-snapshots price and amount. A quota that no longer resolves on
// that date rejects the update.
func (f *WageRecordFlowImpl) Update(ctx context.Context, recordID uint, req *dto.UpdateWageRecordRequest) (*dto.UpdateWageRecordResponse, error) {
	record, err := f.wageRepo.ByID(ctx, recordID)
	if err != nil {
		return nil, NewBusinessError("RECORD_LOOKUP_FAILED", "Failed to look up wage record", err)
	}
	if record == nil {
		return nil, NewBusinessError("RECORD_NOT_FOUND", "Wage record not found", ErrWageRecordNotFound)
	}

	quotaID := record.QuotaID
	if req.QuotaID != nil {
		quotaID = *req.QuotaID
	}
	quantity := record.Quantity
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity.IsNegative() {
		return nil, NewBusinessError("RECORD_QUANTITY_NEGATIVE", "Quantity must not be negative", ErrQuantityNegative)
	}
	recordDate := record.RecordDate
	if req.RecordDate != nil {
		d, err := utils.ParseDate(strings.TrimSpace(*req.RecordDate))
		if err != nil {
			return nil, NewBusinessError("RECORD_DATE_INVALID", "Record date must be YYYY-MM-DD", ErrRecordDateMalformed)
		}
		recordDate = d
	}

	details, err := f.quotaRepo.ListAllDetailed(ctx)
	if err != nil {
		return nil, NewBusinessError("RECORD_CATALOG_LOAD_FAILED", "Failed to load quota catalog", err)
	}
	res := NewResolver(catalogFromDetails(details)).ResolveByID(quotaID, recordDate)
	if res.Outcome != ResolutionFound {
		return nil, NewBusinessError("RECORD_QUOTA_UNRESOLVED", toResolveResponse(res).Message, ErrQuotaNotFound)
	}

	record.QuotaID = quotaID
	record.Quantity = quantity
	record.RecordDate = recordDate
	record.UnitPrice = res.Quota.UnitPrice
	record.Amount = quantity.Mul(res.Quota.UnitPrice)

	if err := f.wageRepo.Update(ctx, record); err != nil {
		return nil, NewBusinessError("RECORD_UPDATE_FAILED", "Failed to update wage record", err)
	}

	return &dto.UpdateWageRecordResponse{
		Message: "Wage record updated successfully",
		Record: &dto.CreatedRecordDTO{
			RecordID:  record.ID,
			QuotaID:   record.QuotaID,
			UnitPrice: record.UnitPrice,
			Quantity:  record.Quantity,
			Amount:    record.Amount,
		},
	}, nil
}

func (f *WageRecordFlowImpl) Delete(ctx context.Context, recordID uint) (*dto.DeleteWageRecordResponse, error) {
	deleted, err := f.wageRepo.Delete(ctx, recordID)
	if err != nil {
		return nil, NewBusinessError("RECORD_DELETE_FAILED", "Failed to delete wage record", err)
	}
	if !deleted {
		return nil, NewBusinessError("RECORD_NOT_FOUND", "Wage record not found", ErrWageRecordNotFound)
	}
	return &dto.DeleteWageRecordResponse{
		Message:  "Wage record deleted successfully",
		RecordID: recordID,
	}, nil
}

func toWageRecordDTO(d *repository.WageRecordDetail) dto.WageRecordDTO {
	return dto.WageRecordDTO{
		ID:          d.ID,
		WorkerCode:  d.WorkerCode,
		WorkerName:  d.WorkerName,
		QuotaID:     d.QuotaID,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		Amount:      d.Amount,
		RecordDate:  utils.FormatDate(d.RecordDate),
		ModelCode:   d.ModelCode,
		ModelName:   d.ModelName,
		Cat1Code:    d.Cat1Code,
		Cat1Name:    d.Cat1Name,
		Cat2Code:    d.Cat2Code,
		Cat2Name:    d.Cat2Name,
		ProcessCode: d.ProcessCode,
		ProcessName: d.ProcessName,
		CreatedAt:   d.CreatedAt.Format(time.RFC3339),
	}
}
