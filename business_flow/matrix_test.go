package businessflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMatrix(t *testing.T) {
	window := func(id uint, model, cat2, process, price string) CatalogRow {
		return testRow(id, model, "C1", cat2, process, price, day(2025, 1, 1), day(2025, 12, 31))
	}
	catalog := NewQuotaCatalog([]CatalogRow{
		window(1, "10-A", "S1", "P1", "3.50"),
		window(2, "2-B", "S1", "P1", "2.00"),
		window(3, "2-B", "S1", "P2", "2.25"),
		window(4, "10-A", "S2", "P1", "5.00"),
		// Different work section, must not appear.
		testRow(5, "10-A", "C2", "S1", "P1", "9.99", day(2025, 1, 1), day(2025, 12, 31)),
		// Lapsed before the reference date, must not appear.
		testRow(6, "10-A", "C1", "S1", "P3", "1.00", day(2024, 1, 1), day(2024, 12, 31)),
	})

	sections := BuildMatrix(catalog, "C1", day(2025, 6, 1))
	require.Len(t, sections, 2)

	t.Run("SectionsSortedByCat2", func(t *testing.T) {
		assert.Equal(t, "S1", sections[0].Cat2Code)
		assert.Equal(t, "S2", sections[1].Cat2Code)
	})

	t.Run("NumericModelOrdering", func(t *testing.T) {
		s1 := sections[0]
		require.Len(t, s1.Rows, 2)
		assert.Equal(t, "2-B", s1.Rows[0].Code)
		assert.Equal(t, "10-A", s1.Rows[1].Code)
	})

	t.Run("ColumnsSorted", func(t *testing.T) {
		s1 := sections[0]
		require.Len(t, s1.Columns, 2)
		assert.Equal(t, "P1", s1.Columns[0].Code)
		assert.Equal(t, "P2", s1.Columns[1].Code)
	})

	t.Run("AbsentCellsStayAbsent", func(t *testing.T) {
		s1 := sections[0]
		_, ok := s1.Cells["10-A"]["P2"]
		assert.False(t, ok, "unpriced pair must not render as a cell")
	})

	t.Run("CellValues", func(t *testing.T) {
		cell, ok := sections[0].Cells["2-B"]["P2"]
		require.True(t, ok)
		assert.Equal(t, uint(3), cell.QuotaID)
		assert.Equal(t, "2.25", cell.UnitPrice.StringFixed(2))
	})

	t.Run("EmptyForUnknownSection", func(t *testing.T) {
		assert.Empty(t, BuildMatrix(catalog, "C9", day(2025, 6, 1)))
	})
}

func TestBuildMatrixOverlapPicksTieBreakWinner(t *testing.T) {
	catalog := NewQuotaCatalog([]CatalogRow{
		testRow(1, "10-A", "C1", "S1", "P1", "3.50", day(2025, 1, 1), day(2025, 12, 31)),
		testRow(2, "10-A", "C1", "S1", "P1", "4.00", day(2025, 6, 1), day(2025, 12, 31)),
	})
	date := day(2025, 8, 1)

	sections := BuildMatrix(catalog, "C1", date)
	require.Len(t, sections, 1)
	cell, ok := sections[0].Cells["10-A"]["P1"]
	require.True(t, ok)

	// Every cell agrees with point-in-time resolution of its combination.
	res := NewResolver(catalog).ResolveByCombination(catalog.Rows()[0].Combination(), date)
	require.Equal(t, ResolutionFound, res.Outcome)
	assert.Equal(t, res.Quota.QuotaID, cell.QuotaID)
	assert.Equal(t, uint(2), cell.QuotaID)
}

func TestCompareModelCodes(t *testing.T) {
	assert.True(t, CompareModelCodes("2-ABC", "10-XYZ"))
	assert.False(t, CompareModelCodes("10-XYZ", "2-ABC"))
	assert.True(t, CompareModelCodes("10-A", "10-B"))
	// Without a numeric prefix, plain lexicographic order applies.
	assert.True(t, CompareModelCodes("AL-100", "ZX-1"))
	assert.True(t, CompareModelCodes("ABC", "XYZ"))
}

func TestFilterCombinations(t *testing.T) {
	catalog := NewQuotaCatalog([]CatalogRow{
		testRow(1, "10-A", "C2", "S1", "P1", "1.00", day(2025, 1, 1), day(2025, 12, 31)),
		testRow(2, "10-A", "C1", "S2", "P1", "1.00", day(2025, 1, 1), day(2025, 12, 31)),
		testRow(3, "2-B", "C1", "S1", "P1", "1.00", day(2024, 1, 1), day(2024, 12, 31)),
		// Duplicate pair via another model.
		testRow(4, "10-A", "C1", "S1", "P2", "1.00", day(2025, 1, 1), day(2025, 12, 31)),
	})

	pairs := FilterCombinations(catalog)
	require.Len(t, pairs, 3)
	assert.Equal(t, CombinationPair{Cat1Code: "C1", Cat1Name: "Section C1", Cat2Code: "S1", Cat2Name: "Stage S1"}, pairs[0])
	assert.Equal(t, "S2", pairs[1].Cat2Code)
	assert.Equal(t, "C2", pairs[2].Cat1Code)
}

func TestEffectiveDates(t *testing.T) {
	catalog := NewQuotaCatalog([]CatalogRow{
		testRow(1, "10-A", "C1", "S1", "P1", "1.00", day(2025, 7, 1), day(2025, 12, 31)),
		testRow(2, "10-A", "C1", "S1", "P1", "1.00", day(2025, 1, 1), day(2025, 6, 30)),
		testRow(3, "2-B", "C2", "S2", "P1", "1.00", day(2024, 1, 1), day(2024, 12, 31)),
		// Same effective date as quota 2, deduplicated.
		testRow(4, "2-B", "C1", "S1", "P2", "1.00", day(2025, 1, 1), day(2025, 12, 31)),
	})

	t.Run("AllAscending", func(t *testing.T) {
		dates := EffectiveDates(catalog, nil, nil)
		require.Len(t, dates, 3)
		assert.Equal(t, []time.Time{day(2024, 1, 1), day(2025, 1, 1), day(2025, 7, 1)}, dates)
	})

	t.Run("FilteredByPair", func(t *testing.T) {
		cat1, cat2 := "C2", "S2"
		dates := EffectiveDates(catalog, &cat1, &cat2)
		require.Len(t, dates, 1)
		assert.Equal(t, day(2024, 1, 1), dates[0])
	})
}
