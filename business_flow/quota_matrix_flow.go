package businessflow

import (
	"context"
	"strings"

	"github.com/dahe-motor/piecerate/app/dto"
	"github.com/dahe-motor/piecerate/repository"
	"github.com/dahe-motor/piecerate/utils"
)

// QuotaMatrixFlow serves the pivoted price matrix and its supporting
// lookups (combination pairs, distinct effective dates).
type QuotaMatrixFlow interface {
	GetMatrix(ctx context.Context, cat1Code string, cat2Code *string, effectiveDate string) (*dto.GetQuotaMatrixResponse, error)
	ListCombinations(ctx context.Context) (*dto.ListMatrixCombinationsResponse, error)
	ListEffectiveDates(ctx context.Context, cat1Code, cat2Code *string) (*dto.ListEffectiveDatesResponse, error)
}

type QuotaMatrixFlowImpl struct {
	quotaRepo repository.QuotaRepository
}

func NewQuotaMatrixFlow(quotaRepo repository.QuotaRepository) QuotaMatrixFlow {
	return &QuotaMatrixFlowImpl{quotaRepo: quotaRepo}
}

// GetMatrix pivots the quotas of one work-section category valid on the
// given date. An optional process-category code narrows the result to a
// single section.
func (f *QuotaMatrixFlowImpl) GetMatrix(ctx context.Context, cat1Code string, cat2Code *string, effectiveDate string) (*dto.GetQuotaMatrixResponse, error) {
	cat1Code = strings.TrimSpace(cat1Code)
	if cat1Code == "" {
		return nil, NewBusinessError("MATRIX_CAT1_REQUIRED", "Work-section category is required", ErrCat1Required)
	}

	date, err := utils.ParseDate(strings.TrimSpace(effectiveDate))
	if err != nil {
		return nil, NewBusinessError("MATRIX_DATE_INVALID", "Effective date must be YYYY-MM-DD", ErrRecordDateMalformed)
	}

	details, err := f.quotaRepo.ListByCat1Detailed(ctx, cat1Code)
	if err != nil {
		return nil, NewBusinessError("MATRIX_CATALOG_LOAD_FAILED", "Failed to load quota catalog", err)
	}

	catalog := catalogFromDetails(details)
	logOverlapWarnings(catalog)

	sections := BuildMatrix(catalog, cat1Code, date)
	if cat2Code != nil && strings.TrimSpace(*cat2Code) != "" {
		want := strings.TrimSpace(*cat2Code)
		filtered := sections[:0]
		for _, s := range sections {
			if s.Cat2Code == want {
				filtered = append(filtered, s)
			}
		}
		sections = filtered
	}

	resp := &dto.GetQuotaMatrixResponse{
		Message:       "Quota matrix retrieved successfully",
		Cat1Code:      cat1Code,
		EffectiveDate: utils.FormatDate(date),
		Sections:      make([]dto.MatrixSectionDTO, 0, len(sections)),
	}
	for _, s := range sections {
		resp.Sections = append(resp.Sections, toMatrixSectionDTO(s))
	}
	return resp, nil
}

// ListCombinations returns every (cat1, cat2) pair that has quota data,
// across all dates.
func (f *QuotaMatrixFlowImpl) ListCombinations(ctx context.Context) (*dto.ListMatrixCombinationsResponse, error) {
	details, err := f.quotaRepo.ListAllDetailed(ctx)
	if err != nil {
		return nil, NewBusinessError("MATRIX_CATALOG_LOAD_FAILED", "Failed to load quota catalog", err)
	}

	pairs := FilterCombinations(catalogFromDetails(details))
	items := make([]dto.CombinationPairDTO, 0, len(pairs))
	for _, p := range pairs {
		items = append(items, dto.CombinationPairDTO{
			Cat1Code: p.Cat1Code,
			Cat1Name: p.Cat1Name,
			Cat2Code: p.Cat2Code,
			Cat2Name: p.Cat2Name,
		})
	}
	return &dto.ListMatrixCombinationsResponse{
		Message: "Matrix combinations retrieved successfully",
		Items:   items,
	}, nil
}

// ListEffectiveDates returns the distinct effective dates of quotas under
// an optional category filter, in ascending order. The UI offers these as
// the matrix date picker presets.
func (f *QuotaMatrixFlowImpl) ListEffectiveDates(ctx context.Context, cat1Code, cat2Code *string) (*dto.ListEffectiveDatesResponse, error) {
	details, err := f.quotaRepo.ListAllDetailed(ctx)
	if err != nil {
		return nil, NewBusinessError("MATRIX_CATALOG_LOAD_FAILED", "Failed to load quota catalog", err)
	}

	dates := EffectiveDates(catalogFromDetails(details), cat1Code, cat2Code)
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, utils.FormatDate(d))
	}
	return &dto.ListEffectiveDatesResponse{
		Message: "Effective dates retrieved successfully",
		Dates:   out,
	}, nil
}

func toMatrixSectionDTO(s MatrixSection) dto.MatrixSectionDTO {
	out := dto.MatrixSectionDTO{
		Cat2Code: s.Cat2Code,
		Cat2Name: s.Cat2Name,
		Rows:     make([]dto.AxisEntryDTO, 0, len(s.Rows)),
		Columns:  make([]dto.AxisEntryDTO, 0, len(s.Columns)),
		Cells:    make(map[string]map[string]dto.MatrixCellDTO, len(s.Cells)),
	}
	for _, r := range s.Rows {
		out.Rows = append(out.Rows, dto.AxisEntryDTO{Code: r.Code, Name: r.Name})
	}
	for _, c := range s.Columns {
		out.Columns = append(out.Columns, dto.AxisEntryDTO{Code: c.Code, Name: c.Name})
	}
	for model, cols := range s.Cells {
		row := make(map[string]dto.MatrixCellDTO, len(cols))
		for process, cell := range cols {
			row[process] = dto.MatrixCellDTO{QuotaID: cell.QuotaID, UnitPrice: cell.UnitPrice}
		}
		out.Cells[model] = row
	}
	return out
}
