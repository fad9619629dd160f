package businessflow

import (
	"context"
	"log"
	"strings"

	"github.com/dahe-motor/piecerate/app/dto"
	"github.com/dahe-motor/piecerate/models"
	"github.com/dahe-motor/piecerate/repository"
	"github.com/dahe-motor/piecerate/utils"
)

// QuotaFlow maintains quota versions. Writes invalidate the cached option
// bundles; overlapping validity windows are flagged as warnings on the
// response but never rejected, matching how resolution tolerates them.
type QuotaFlow interface {
	Create(ctx context.Context, req *dto.CreateQuotaRequest) (*dto.CreateQuotaResponse, error)
	Get(ctx context.Context, id uint) (*dto.GetQuotaResponse, error)
	List(ctx context.Context, filter models.QuotaFilter, limit, offset int) (*dto.ListQuotasResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateQuotaRequest) (*dto.UpdateQuotaResponse, error)
	Delete(ctx context.Context, id uint) (*dto.DeleteQuotaResponse, error)
}

type QuotaFlowImpl struct {
	quotaRepo   repository.QuotaRepository
	optionsFlow QuotaOptionsFlow
}

func NewQuotaFlow(quotaRepo repository.QuotaRepository, optionsFlow QuotaOptionsFlow) QuotaFlow {
	return &QuotaFlowImpl{quotaRepo: quotaRepo, optionsFlow: optionsFlow}
}

func (f *QuotaFlowImpl) Create(ctx context.Context, req *dto.CreateQuotaRequest) (*dto.CreateQuotaResponse, error) {
	if req.UnitPrice.IsNegative() {
		return nil, NewBusinessError("QUOTA_PRICE_NEGATIVE", "Unit price must not be negative", ErrUnitPriceNegative)
	}

	effective, err := utils.ParseDate(strings.TrimSpace(req.EffectiveDate))
	if err != nil {
		return nil, NewBusinessError("QUOTA_EFFECTIVE_DATE_INVALID", "Effective date must be YYYY-MM-DD", ErrRecordDateMalformed)
	}

	obsolete := models.OpenEndedObsoleteDate
	if req.ObsoleteDate != nil && strings.TrimSpace(*req.ObsoleteDate) != "" {
		obsolete, err = utils.ParseDate(strings.TrimSpace(*req.ObsoleteDate))
		if err != nil {
			return nil, NewBusinessError("QUOTA_OBSOLETE_DATE_INVALID", "Obsolete date must be YYYY-MM-DD", ErrRecordDateMalformed)
		}
	}
	if obsolete.Before(effective) {
		return nil, NewBusinessError("QUOTA_WINDOW_INVERTED", "Obsolete date must not precede effective date", ErrWindowInverted)
	}

	quota := &models.Quota{
		ModelCode:     strings.TrimSpace(req.ModelCode),
		Cat1Code:      strings.TrimSpace(req.Cat1Code),
		Cat2Code:      strings.TrimSpace(req.Cat2Code),
		ProcessCode:   strings.TrimSpace(req.ProcessCode),
		UnitPrice:     req.UnitPrice,
		EffectiveDate: effective,
		ObsoleteDate:  obsolete,
	}
	if err := f.quotaRepo.Save(ctx, quota); err != nil {
		return nil, NewBusinessError("QUOTA_CREATE_FAILED", "Failed to create quota", err)
	}

	f.invalidateOptions(ctx)

	detail, err := f.quotaRepo.GetByIDDetailed(ctx, quota.ID)
	if err != nil || detail == nil {
		return nil, NewBusinessError("QUOTA_RELOAD_FAILED", "Failed to reload created quota", err)
	}

	return &dto.CreateQuotaResponse{
		Message:  "Quota created successfully",
		Quota:    toQuotaDTOPtr(detailToRow(detail)),
		Warnings: f.overlapWarnings(ctx, quota.Combination()),
	}, nil
}

func (f *QuotaFlowImpl) Get(ctx context.Context, id uint) (*dto.GetQuotaResponse, error) {
	detail, err := f.quotaRepo.GetByIDDetailed(ctx, id)
	if err != nil {
		return nil, NewBusinessError("QUOTA_LOOKUP_FAILED", "Failed to look up quota", err)
	}
	if detail == nil {
		return nil, NewBusinessError("QUOTA_NOT_FOUND", "Quota not found", ErrQuotaNotFound)
	}
	return &dto.GetQuotaResponse{
		Message: "Quota retrieved successfully",
		Quota:   toQuotaDTOPtr(detailToRow(detail)),
	}, nil
}

// List filters in memory over the full catalog. The catalog is a dictionary
// sized table, so the simplicity beats another parameterized join.
func (f *QuotaFlowImpl) List(ctx context.Context, filter models.QuotaFilter, limit, offset int) (*dto.ListQuotasResponse, error) {
	details, err := f.quotaRepo.ListAllDetailed(ctx)
	if err != nil {
		return nil, NewBusinessError("QUOTA_LIST_FAILED", "Failed to list quotas", err)
	}

	items := make([]dto.QuotaDTO, 0, len(details))
	for _, d := range details {
		if !matchesQuotaFilter(d, filter) {
			continue
		}
		items = append(items, ToQuotaDTO(*detailToRow(d)))
	}

	if offset > 0 {
		if offset >= len(items) {
			items = items[:0]
		} else {
			items = items[offset:]
		}
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}

	return &dto.ListQuotasResponse{
		Message: "Quotas retrieved successfully",
		Items:   items,
	}, nil
}

func (f *QuotaFlowImpl) Update(ctx context.Context, id uint, req *dto.UpdateQuotaRequest) (*dto.UpdateQuotaResponse, error) {
	quota, err := f.quotaRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("QUOTA_LOOKUP_FAILED", "Failed to look up quota", err)
	}
	if quota == nil {
		return nil, NewBusinessError("QUOTA_NOT_FOUND", "Quota not found", ErrQuotaNotFound)
	}

	if req.UnitPrice != nil {
		if req.UnitPrice.IsNegative() {
			return nil, NewBusinessError("QUOTA_PRICE_NEGATIVE", "Unit price must not be negative", ErrUnitPriceNegative)
		}
		quota.UnitPrice = *req.UnitPrice
	}
	if req.EffectiveDate != nil {
		d, err := utils.ParseDate(strings.TrimSpace(*req.EffectiveDate))
		if err != nil {
			return nil, NewBusinessError("QUOTA_EFFECTIVE_DATE_INVALID", "Effective date must be YYYY-MM-DD", ErrRecordDateMalformed)
		}
		quota.EffectiveDate = d
	}
	if req.ObsoleteDate != nil {
		d := models.OpenEndedObsoleteDate
		if strings.TrimSpace(*req.ObsoleteDate) != "" {
			d, err = utils.ParseDate(strings.TrimSpace(*req.ObsoleteDate))
			if err != nil {
				return nil, NewBusinessError("QUOTA_OBSOLETE_DATE_INVALID", "Obsolete date must be YYYY-MM-DD", ErrRecordDateMalformed)
			}
		}
		quota.ObsoleteDate = d
	}
	if quota.ObsoleteDate.Before(quota.EffectiveDate) {
		return nil, NewBusinessError("QUOTA_WINDOW_INVERTED", "Obsolete date must not precede effective date", ErrWindowInverted)
	}

	if err := f.quotaRepo.Update(ctx, quota); err != nil {
		return nil, NewBusinessError("QUOTA_UPDATE_FAILED", "Failed to update quota", err)
	}

	f.invalidateOptions(ctx)

	detail, err := f.quotaRepo.GetByIDDetailed(ctx, id)
	if err != nil || detail == nil {
		return nil, NewBusinessError("QUOTA_RELOAD_FAILED", "Failed to reload updated quota", err)
	}

	return &dto.UpdateQuotaResponse{
		Message:  "Quota updated successfully",
		Quota:    toQuotaDTOPtr(detailToRow(detail)),
		Warnings: f.overlapWarnings(ctx, quota.Combination()),
	}, nil
}

// Delete removes a quota version. Existing wage records keep their
// snapshotted price and amount regardless.
func (f *QuotaFlowImpl) Delete(ctx context.Context, id uint) (*dto.DeleteQuotaResponse, error) {
	deleted, err := f.quotaRepo.Delete(ctx, id)
	if err != nil {
		return nil, NewBusinessError("QUOTA_DELETE_FAILED", "Failed to delete quota", err)
	}
	if !deleted {
		return nil, NewBusinessError("QUOTA_NOT_FOUND", "Quota not found", ErrQuotaNotFound)
	}

	f.invalidateOptions(ctx)

	return &dto.DeleteQuotaResponse{
		Message: "Quota deleted successfully",
		QuotaID: id,
	}, nil
}

func (f *QuotaFlowImpl) invalidateOptions(ctx context.Context) {
	if f.optionsFlow == nil {
		return
	}
	if err := f.optionsFlow.InvalidateCache(ctx); err != nil {
		log.Printf("Warning: failed to invalidate quota options cache: %v", err)
	}
}

// overlapWarnings reports window overlaps among the versions of one
// combination after a write. Best effort; a load failure yields no warnings
// rather than failing the write that already happened.
func (f *QuotaFlowImpl) overlapWarnings(ctx context.Context, key models.CombinationKey) []string {
	details, err := f.quotaRepo.ListByKeyDetailed(ctx, key)
	if err != nil {
		return nil
	}
	warnings := catalogFromDetails(details).OverlapWarnings()
	if len(warnings) == 0 {
		return nil
	}
	out := make([]string, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, w.String())
	}
	return out
}

func detailToRow(d *repository.QuotaDetail) *CatalogRow {
	rows := catalogFromDetails([]*repository.QuotaDetail{d}).Rows()
	return &rows[0]
}

func matchesQuotaFilter(d *repository.QuotaDetail, filter models.QuotaFilter) bool {
	if filter.ModelCode != nil && d.ModelCode != *filter.ModelCode {
		return false
	}
	if filter.Cat1Code != nil && d.Cat1Code != *filter.Cat1Code {
		return false
	}
	if filter.Cat2Code != nil && d.Cat2Code != *filter.Cat2Code {
		return false
	}
	if filter.ProcessCode != nil && d.ProcessCode != *filter.ProcessCode {
		return false
	}
	if filter.ValidOn != nil {
		if !utils.DateBetween(*filter.ValidOn, d.EffectiveDate, d.ObsoleteDate) {
			return false
		}
	}
	return true
}
