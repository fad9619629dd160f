package businessflow

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dahe-motor/piecerate/app/dto"
	"github.com/dahe-motor/piecerate/models"
	"github.com/dahe-motor/piecerate/repository"
	"github.com/dahe-motor/piecerate/utils"
)

// QuotaResolutionFlow resolves one logical key (explicit quota id or the
// 4-part combination) against a record date.
type QuotaResolutionFlow interface {
	Resolve(ctx context.Context, req *dto.ResolveQuotaRequest) (*dto.ResolveQuotaResponse, error)
}

type QuotaResolutionFlowImpl struct {
	quotaRepo repository.QuotaRepository
}

func NewQuotaResolutionFlow(quotaRepo repository.QuotaRepository) QuotaResolutionFlow {
	return &QuotaResolutionFlowImpl{quotaRepo: quotaRepo}
}

// Resolve loads the catalog slice relevant to the key and performs
// point-in-time resolution. Lapsed and future prices are outcomes, not
// errors; only malformed input and storage failures error out.
func (f *QuotaResolutionFlowImpl) Resolve(ctx context.Context, req *dto.ResolveQuotaRequest) (*dto.ResolveQuotaResponse, error) {
	recordDate, err := utils.ParseDate(strings.TrimSpace(req.RecordDate))
	if err != nil {
		return nil, NewBusinessError("RESOLVE_RECORD_DATE_INVALID", "Record date must be YYYY-MM-DD", ErrRecordDateMalformed)
	}

	if req.QuotaID != nil {
		return f.resolveByID(ctx, *req.QuotaID, recordDate)
	}

	if req.ModelCode == nil || req.Cat1Code == nil || req.Cat2Code == nil || req.ProcessCode == nil {
		return nil, NewBusinessError("RESOLVE_KEY_REQUIRED", "Either quota_id or the full combination is required", ErrQuotaKeyRequired)
	}

	key := models.CombinationKey{
		ModelCode:   *req.ModelCode,
		Cat1Code:    *req.Cat1Code,
		Cat2Code:    *req.Cat2Code,
		ProcessCode: *req.ProcessCode,
	}

	details, err := f.quotaRepo.ListByKeyDetailed(ctx, key)
	if err != nil {
		return nil, NewBusinessError("RESOLVE_CATALOG_LOAD_FAILED", "Failed to load quota catalog", err)
	}

	catalog := catalogFromDetails(details)
	logOverlapWarnings(catalog)

	res := NewResolver(catalog).ResolveByCombination(key, recordDate)
	return toResolveResponse(res), nil
}

func (f *QuotaResolutionFlowImpl) resolveByID(ctx context.Context, id uint, recordDate time.Time) (*dto.ResolveQuotaResponse, error) {
	target, err := f.quotaRepo.GetByIDDetailed(ctx, id)
	if err != nil {
		return nil, NewBusinessError("RESOLVE_CATALOG_LOAD_FAILED", "Failed to load quota catalog", err)
	}
	if target == nil {
		return &dto.ResolveQuotaResponse{
			Outcome: string(ResolutionNotFound),
			Message: "No matching quota",
		}, nil
	}

	// Siblings sharing the combination feed the replacement search.
	details, err := f.quotaRepo.ListByKeyDetailed(ctx, models.CombinationKey{
		ModelCode:   target.ModelCode,
		Cat1Code:    target.Cat1Code,
		Cat2Code:    target.Cat2Code,
		ProcessCode: target.ProcessCode,
	})
	if err != nil {
		return nil, NewBusinessError("RESOLVE_CATALOG_LOAD_FAILED", "Failed to load quota catalog", err)
	}

	catalog := catalogFromDetails(details)
	logOverlapWarnings(catalog)

	res := NewResolver(catalog).ResolveByID(id, recordDate)
	return toResolveResponse(res), nil
}

func logOverlapWarnings(catalog *QuotaCatalog) {
	for _, w := range catalog.OverlapWarnings() {
		log.Printf("Warning: quota catalog anomaly: %s", w)
	}
}

// toResolveResponse maps a resolution to its API shape. The message wording
// is what operators see on batch failures too, so it names the boundary
// date that caused the outcome.
func toResolveResponse(res Resolution) *dto.ResolveQuotaResponse {
	resp := &dto.ResolveQuotaResponse{Outcome: string(res.Outcome)}

	switch res.Outcome {
	case ResolutionFound:
		resp.Message = "Quota resolved"
		resp.Quota = toQuotaDTOPtr(res.Quota)
	case ResolutionNotFound:
		resp.Message = "No matching quota"
	case ResolutionNotYetEffective:
		resp.Message = fmt.Sprintf("Quota takes effect on %s", utils.FormatDate(*res.EarliestEffective))
		resp.EarliestEffectiveDate = utils.ToPtr(utils.FormatDate(*res.EarliestEffective))
	case ResolutionObsolete:
		resp.Message = fmt.Sprintf("Quota lapsed on %s", utils.FormatDate(*res.ObsoleteDate))
		resp.ObsoleteDate = utils.ToPtr(utils.FormatDate(*res.ObsoleteDate))
		if res.Replacement != nil {
			resp.Message += ", a replacement quota is available"
			resp.Replacement = toQuotaDTOPtr(res.Replacement)
		}
	}

	return resp
}
