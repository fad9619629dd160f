package businessflow

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dahe-motor/piecerate/app/dto"
	"github.com/dahe-motor/piecerate/config"
	"github.com/dahe-motor/piecerate/repository"
	"github.com/dahe-motor/piecerate/utils"
)

// QuotaOptionsFlow serves the cascade option index that drives the entry
// form dropdowns. The bundle is cached per record date because it is read
// on every form open and changes only when quotas change.
type QuotaOptionsFlow interface {
	GetOptions(ctx context.Context, recordDate *string) (*dto.GetQuotaOptionsResponse, error)
	InvalidateCache(ctx context.Context) error
}

type QuotaOptionsFlowImpl struct {
	quotaRepo   repository.QuotaRepository
	rc          *redis.Client
	cacheConfig *config.CacheConfig
}

func NewQuotaOptionsFlow(quotaRepo repository.QuotaRepository, rc *redis.Client, cacheConfig *config.CacheConfig) QuotaOptionsFlow {
	return &QuotaOptionsFlowImpl{quotaRepo: quotaRepo, rc: rc, cacheConfig: cacheConfig}
}

func (f *QuotaOptionsFlowImpl) GetOptions(ctx context.Context, recordDate *string) (*dto.GetQuotaOptionsResponse, error) {
	var date *time.Time
	dateKey := "all"
	if recordDate != nil && strings.TrimSpace(*recordDate) != "" {
		d, err := utils.ParseDate(strings.TrimSpace(*recordDate))
		if err != nil {
			return nil, NewBusinessError("OPTIONS_RECORD_DATE_INVALID", "Record date must be YYYY-MM-DD", ErrRecordDateMalformed)
		}
		date = &d
		dateKey = utils.FormatDate(d)
	}

	cacheKey := redisKey(*f.cacheConfig, utils.QuotaOptionsCacheKeyPrefix+dateKey)

	// try redis first
	if f.rc != nil {
		if bs, err := f.rc.Get(ctx, cacheKey).Bytes(); err == nil && len(bs) > 0 {
			var out dto.GetQuotaOptionsResponse
			if err := json.Unmarshal(bs, &out); err == nil {
				out.Message = "Quota options retrieved from cache"
				return &out, nil
			}
		}
	}

	details, err := f.quotaRepo.ListAllDetailed(ctx)
	if err != nil {
		return nil, NewBusinessError("OPTIONS_CATALOG_LOAD_FAILED", "Failed to load quota catalog", err)
	}

	catalog := catalogFromDetails(details)
	logOverlapWarnings(catalog)

	bundle := BuildOptions(catalog, date)
	resp := toOptionsResponse(bundle)
	if date != nil {
		resp.RecordDate = utils.ToPtr(dateKey)
	}

	if f.rc != nil {
		if bs, err := json.Marshal(resp); err == nil {
			_ = f.rc.Set(ctx, cacheKey, bs, f.cacheConfig.DefaultTTL).Err()
		}
	}

	return resp, nil
}

// InvalidateCache drops every cached options bundle. Quota CRUD calls this
// after a write so stale dropdowns never outlive a price change.
func (f *QuotaOptionsFlowImpl) InvalidateCache(ctx context.Context) error {
	if f.rc == nil {
		return nil
	}
	pattern := redisKey(*f.cacheConfig, utils.QuotaOptionsCacheKeyPrefix+"*")
	iter := f.rc.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := f.rc.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func toOptionsResponse(b OptionsBundle) *dto.GetQuotaOptionsResponse {
	resp := &dto.GetQuotaOptionsResponse{
		Message:      "Quota options retrieved successfully",
		Cat1Options:  make([]dto.OptionDTO, 0, len(b.Cat1Options)),
		Cat2ByCat1:   make(map[string][]dto.OptionDTO, len(b.Cat2ByCat1)),
		ModelOptions: make([]dto.ModelOptionDTO, 0, len(b.ModelOptions)),
		Combinations: make([]dto.QuotaDTO, 0, len(b.Combinations)),
	}
	for _, o := range b.Cat1Options {
		resp.Cat1Options = append(resp.Cat1Options, dto.OptionDTO{Value: o.Value, Label: o.Label})
	}
	for cat1, opts := range b.Cat2ByCat1 {
		out := make([]dto.OptionDTO, 0, len(opts))
		for _, o := range opts {
			out = append(out, dto.OptionDTO{Value: o.Value, Label: o.Label})
		}
		resp.Cat2ByCat1[cat1] = out
	}
	for _, m := range b.ModelOptions {
		pairs := make([]dto.CatPairDTO, 0, len(m.Pairs))
		for _, p := range m.Pairs {
			pairs = append(pairs, dto.CatPairDTO{Cat1Code: p.Cat1Code, Cat2Code: p.Cat2Code})
		}
		resp.ModelOptions = append(resp.ModelOptions, dto.ModelOptionDTO{Value: m.Value, Label: m.Label, Pairs: pairs})
	}
	for _, row := range b.Combinations {
		resp.Combinations = append(resp.Combinations, ToQuotaDTO(row))
	}
	return resp
}
