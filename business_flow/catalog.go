package businessflow

import (
	"fmt"
	"time"

	"github.com/dahe-motor/piecerate/models"
	"github.com/dahe-motor/piecerate/utils"
	"github.com/shopspring/decimal"
)

// CatalogRow is one quota version denormalized with the display names of its
// combination members. Rows are value types; the catalog never mutates them
// after construction.
type CatalogRow struct {
	QuotaID       uint
	ModelCode     string
	ModelName     string
	Cat1Code      string
	Cat1Name      string
	Cat2Code      string
	Cat2Name      string
	ProcessCode   string
	ProcessName   string
	UnitPrice     decimal.Decimal
	EffectiveDate time.Time
	ObsoleteDate  time.Time
}

// Combination returns the 4-part key this row prices.
func (r CatalogRow) Combination() models.CombinationKey {
	return models.CombinationKey{
		ModelCode:   r.ModelCode,
		Cat1Code:    r.Cat1Code,
		Cat2Code:    r.Cat2Code,
		ProcessCode: r.ProcessCode,
	}
}

// ValidOn reports whether date lies inside the row's validity window,
// inclusive on both ends.
func (r CatalogRow) ValidOn(date time.Time) bool {
	return utils.DateBetween(date, r.EffectiveDate, r.ObsoleteDate)
}

// FutureOn reports whether the row's window starts after date.
func (r CatalogRow) FutureOn(date time.Time) bool {
	return utils.DateOnly(r.EffectiveDate).After(utils.DateOnly(date))
}

// PastOn reports whether the row's window ended before date.
func (r CatalogRow) PastOn(date time.Time) bool {
	return utils.DateOnly(r.ObsoleteDate).Before(utils.DateOnly(date))
}

// QuotaCatalog is an immutable in-memory snapshot of quota versions, loaded
// once per request window. Resolution, matrix construction and option
// indexing are read-only projections over it.
type QuotaCatalog struct {
	rows    []CatalogRow
	byID    map[uint]int
	byCombo map[models.CombinationKey][]int
}

// NewQuotaCatalog indexes the given rows by id and by combination key.
func NewQuotaCatalog(rows []CatalogRow) *QuotaCatalog {
	c := &QuotaCatalog{
		rows:    rows,
		byID:    make(map[uint]int, len(rows)),
		byCombo: make(map[models.CombinationKey][]int),
	}
	for i, row := range rows {
		c.byID[row.QuotaID] = i
		key := row.Combination()
		c.byCombo[key] = append(c.byCombo[key], i)
	}
	return c
}

// Rows returns all rows in insertion order.
func (c *QuotaCatalog) Rows() []CatalogRow {
	return c.rows
}

// Len returns the number of quota versions in the snapshot.
func (c *QuotaCatalog) Len() int {
	return len(c.rows)
}

// ByID returns the row with the given quota id, or nil.
func (c *QuotaCatalog) ByID(id uint) *CatalogRow {
	i, ok := c.byID[id]
	if !ok {
		return nil
	}
	row := c.rows[i]
	return &row
}

// ByCombination returns every version of one combination.
func (c *QuotaCatalog) ByCombination(key models.CombinationKey) []CatalogRow {
	idxs := c.byCombo[key]
	out := make([]CatalogRow, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, c.rows[i])
	}
	return out
}

// ValidOn returns every row whose window contains date.
func (c *QuotaCatalog) ValidOn(date time.Time) []CatalogRow {
	var out []CatalogRow
	for _, row := range c.rows {
		if row.ValidOn(date) {
			out = append(out, row)
		}
	}
	return out
}

// OverlapWarning flags two versions of the same combination whose validity
// windows intersect. Upstream data entry should prevent this; resolution
// tolerates it via the deterministic tie-break, but callers are expected to
// surface the anomaly rather than silently fix it.
type OverlapWarning struct {
	Combination models.CombinationKey
	QuotaIDA    uint
	QuotaIDB    uint
}

func (w OverlapWarning) String() string {
	return fmt.Sprintf("quotas %d and %d overlap for model=%s cat1=%s cat2=%s process=%s",
		w.QuotaIDA, w.QuotaIDB,
		w.Combination.ModelCode, w.Combination.Cat1Code, w.Combination.Cat2Code, w.Combination.ProcessCode)
}

// OverlapWarnings runs the validation pass over the snapshot and returns one
// warning per overlapping pair.
func (c *QuotaCatalog) OverlapWarnings() []OverlapWarning {
	var warnings []OverlapWarning
	for key, idxs := range c.byCombo {
		for i := 0; i < len(idxs); i++ {
			for j := i + 1; j < len(idxs); j++ {
				a, b := c.rows[idxs[i]], c.rows[idxs[j]]
				if windowsOverlap(a, b) {
					first, second := a.QuotaID, b.QuotaID
					if first > second {
						first, second = second, first
					}
					warnings = append(warnings, OverlapWarning{Combination: key, QuotaIDA: first, QuotaIDB: second})
				}
			}
		}
	}
	return warnings
}

func windowsOverlap(a, b CatalogRow) bool {
	// Inclusive windows intersect unless one ends strictly before the
	// other starts.
	return !a.ObsoleteDate.Before(b.EffectiveDate) && !b.ObsoleteDate.Before(a.EffectiveDate)
}
