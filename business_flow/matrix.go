package businessflow

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AxisEntry is one labeled row or column of the price matrix.
type AxisEntry struct {
	Code string
	Name string
}

// MatrixCell is the priced intersection of one model and one process.
// Pairs without a quota have no cell; absence renders as empty, never zero.
type MatrixCell struct {
	QuotaID   uint
	UnitPrice decimal.Decimal
}

// MatrixSection is the pivoted grid for one process category: models as
// rows, processes as columns.
type MatrixSection struct {
	Cat2Code string
	Cat2Name string
	Rows     []AxisEntry
	Columns  []AxisEntry
	// Cells is keyed by model code, then process code.
	Cells map[string]map[string]MatrixCell
}

// CombinationPair is one (cat1, cat2) pair that has quota data.
type CombinationPair struct {
	Cat1Code string
	Cat1Name string
	Cat2Code string
	Cat2Name string
}

// BuildMatrix pivots the quotas of one work-section category that are valid
// on date into sections per process category. Cell conflicts from
// overlapping windows resolve with the same tie-break as point-in-time
// resolution, so every cell round-trips through ResolveByCombination.
func BuildMatrix(catalog *QuotaCatalog, cat1Code string, date time.Time) []MatrixSection {
	bySection := make(map[string][]CatalogRow)
	for _, row := range catalog.Rows() {
		if row.Cat1Code == cat1Code && row.ValidOn(date) {
			bySection[row.Cat2Code] = append(bySection[row.Cat2Code], row)
		}
	}

	cat2Codes := make([]string, 0, len(bySection))
	for code := range bySection {
		cat2Codes = append(cat2Codes, code)
	}
	sort.Strings(cat2Codes)

	sections := make([]MatrixSection, 0, len(cat2Codes))
	for _, cat2 := range cat2Codes {
		sections = append(sections, buildSection(cat2, bySection[cat2]))
	}
	return sections
}

func buildSection(cat2Code string, rows []CatalogRow) MatrixSection {
	section := MatrixSection{
		Cat2Code: cat2Code,
		Cells:    make(map[string]map[string]MatrixCell),
	}

	modelNames := make(map[string]string)
	processNames := make(map[string]string)
	for _, row := range rows {
		if section.Cat2Name == "" {
			section.Cat2Name = row.Cat2Name
		}
		if _, ok := modelNames[row.ModelCode]; !ok {
			modelNames[row.ModelCode] = row.ModelName
		}
		if _, ok := processNames[row.ProcessCode]; !ok {
			processNames[row.ProcessCode] = row.ProcessName
		}

		cells, ok := section.Cells[row.ModelCode]
		if !ok {
			cells = make(map[string]MatrixCell)
			section.Cells[row.ModelCode] = cells
		}
		// Overlapping windows can offer two prices for one cell; keep
		// the tie-break winner.
		if existing, ok := cells[row.ProcessCode]; ok {
			if prev := findRow(rows, existing.QuotaID); prev != nil && !LatestEffectiveWins(row, *prev) {
				continue
			}
		}
		cells[row.ProcessCode] = MatrixCell{QuotaID: row.QuotaID, UnitPrice: row.UnitPrice}
	}

	for code, name := range modelNames {
		section.Rows = append(section.Rows, AxisEntry{Code: code, Name: name})
	}
	sort.Slice(section.Rows, func(i, j int) bool {
		return CompareModelCodes(section.Rows[i].Code, section.Rows[j].Code)
	})

	for code, name := range processNames {
		section.Columns = append(section.Columns, AxisEntry{Code: code, Name: name})
	}
	sort.Slice(section.Columns, func(i, j int) bool {
		return section.Columns[i].Code < section.Columns[j].Code
	})

	return section
}

func findRow(rows []CatalogRow, id uint) *CatalogRow {
	for _, row := range rows {
		if row.QuotaID == id {
			return &row
		}
	}
	return nil
}

// CompareModelCodes orders motor model codes by the numeric value of the
// segment before the first "-" ("2-ABC" before "10-XYZ"); codes without a
// parsable numeric prefix fall back to plain lexicographic order.
func CompareModelCodes(a, b string) bool {
	na, oka := numericPrefix(a)
	nb, okb := numericPrefix(b)
	if oka && okb {
		if na != nb {
			return na < nb
		}
		return a < b
	}
	return a < b
}

func numericPrefix(code string) (int, bool) {
	head, _, _ := strings.Cut(code, "-")
	n, err := strconv.Atoi(head)
	if err != nil {
		return 0, false
	}
	return n, true
}

// FilterCombinations enumerates the distinct (cat1, cat2) pairs that have
// ever had quota data, so a caller can cycle through all non-empty matrices.
func FilterCombinations(catalog *QuotaCatalog) []CombinationPair {
	seen := make(map[string]CombinationPair)
	for _, row := range catalog.Rows() {
		key := row.Cat1Code + "\x00" + row.Cat2Code
		if _, ok := seen[key]; !ok {
			seen[key] = CombinationPair{
				Cat1Code: row.Cat1Code,
				Cat1Name: row.Cat1Name,
				Cat2Code: row.Cat2Code,
				Cat2Name: row.Cat2Name,
			}
		}
	}

	pairs := make([]CombinationPair, 0, len(seen))
	for _, pair := range seen {
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Cat1Code != pairs[j].Cat1Code {
			return pairs[i].Cat1Code < pairs[j].Cat1Code
		}
		return pairs[i].Cat2Code < pairs[j].Cat2Code
	})
	return pairs
}

// EffectiveDates enumerates the distinct effective dates across quotas
// matching the optional (cat1, cat2) filter, ascending, so a caller can
// render one matrix per historical price revision.
func EffectiveDates(catalog *QuotaCatalog, cat1Code, cat2Code *string) []time.Time {
	seen := make(map[time.Time]struct{})
	for _, row := range catalog.Rows() {
		if cat1Code != nil && row.Cat1Code != *cat1Code {
			continue
		}
		if cat2Code != nil && row.Cat2Code != *cat2Code {
			continue
		}
		seen[row.EffectiveDate] = struct{}{}
	}

	dates := make([]time.Time, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
