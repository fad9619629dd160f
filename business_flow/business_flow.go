// Package businessflow contains the business logic for the application.
package businessflow

import (
	"github.com/dahe-motor/piecerate/app/dto"
	"github.com/dahe-motor/piecerate/config"
	"github.com/dahe-motor/piecerate/repository"
	"github.com/dahe-motor/piecerate/utils"
)

const RequestIDKey = "X-Request-ID"

func redisKey(cfg config.CacheConfig, suffix string) string {
	return cfg.RedisPrefix + suffix
}

// ToQuotaDTO converts a catalog row to the wire representation shared by
// resolution results, option rows and CRUD listings.
func ToQuotaDTO(row CatalogRow) dto.QuotaDTO {
	return dto.QuotaDTO{
		QuotaID:       row.QuotaID,
		ModelCode:     row.ModelCode,
		ModelName:     row.ModelName,
		Cat1Code:      row.Cat1Code,
		Cat1Name:      row.Cat1Name,
		Cat2Code:      row.Cat2Code,
		Cat2Name:      row.Cat2Name,
		ProcessCode:   row.ProcessCode,
		ProcessName:   row.ProcessName,
		UnitPrice:     row.UnitPrice,
		EffectiveDate: utils.FormatDate(row.EffectiveDate),
		ObsoleteDate:  utils.FormatDate(row.ObsoleteDate),
	}
}

func toQuotaDTOPtr(row *CatalogRow) *dto.QuotaDTO {
	if row == nil {
		return nil
	}
	d := ToQuotaDTO(*row)
	return &d
}

func catalogFromDetails(details []*repository.QuotaDetail) *QuotaCatalog {
	rows := make([]CatalogRow, 0, len(details))
	for _, d := range details {
		if d == nil {
			continue
		}
		rows = append(rows, CatalogRow{
			QuotaID:       d.ID,
			ModelCode:     d.ModelCode,
			ModelName:     d.ModelName,
			Cat1Code:      d.Cat1Code,
			Cat1Name:      d.Cat1Name,
			Cat2Code:      d.Cat2Code,
			Cat2Name:      d.Cat2Name,
			ProcessCode:   d.ProcessCode,
			ProcessName:   d.ProcessName,
			UnitPrice:     d.UnitPrice,
			EffectiveDate: utils.DateOnly(d.EffectiveDate),
			ObsoleteDate:  utils.DateOnly(d.ObsoleteDate),
		})
	}
	return NewQuotaCatalog(rows)
}
