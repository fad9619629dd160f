package businessflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotaCatalogLookups(t *testing.T) {
	rows := []CatalogRow{
		testRow(1, "10-A", "C1", "S1", "P1", "3.50", day(2025, 1, 1), day(2025, 6, 30)),
		testRow(2, "10-A", "C1", "S1", "P1", "4.00", day(2025, 7, 1), day(2025, 12, 31)),
		testRow(3, "2-B", "C1", "S1", "P1", "2.00", day(2025, 1, 1), day(2025, 12, 31)),
	}
	catalog := NewQuotaCatalog(rows)

	t.Run("ByID", func(t *testing.T) {
		row := catalog.ByID(2)
		require.NotNil(t, row)
		assert.Equal(t, uint(2), row.QuotaID)
		assert.Nil(t, catalog.ByID(42))
	})

	t.Run("ByCombination", func(t *testing.T) {
		versions := catalog.ByCombination(rows[0].Combination())
		assert.Len(t, versions, 2)
		versions = catalog.ByCombination(rows[2].Combination())
		assert.Len(t, versions, 1)
	})

	t.Run("ValidOn", func(t *testing.T) {
		valid := catalog.ValidOn(day(2025, 3, 1))
		assert.Len(t, valid, 2)
		valid = catalog.ValidOn(day(2025, 8, 1))
		assert.Len(t, valid, 2)
		assert.Empty(t, catalog.ValidOn(day(2024, 1, 1)))
	})
}

func TestOverlapWarnings(t *testing.T) {
	t.Run("DisjointWindowsClean", func(t *testing.T) {
		catalog := NewQuotaCatalog([]CatalogRow{
			testRow(1, "10-A", "C1", "S1", "P1", "3.50", day(2025, 1, 1), day(2025, 6, 30)),
			testRow(2, "10-A", "C1", "S1", "P1", "4.00", day(2025, 7, 1), day(2025, 12, 31)),
		})
		assert.Empty(t, catalog.OverlapWarnings())
	})

	t.Run("SharedBoundaryDayOverlaps", func(t *testing.T) {
		// Inclusive windows: a version ending the day another starts
		// double-prices that day.
		catalog := NewQuotaCatalog([]CatalogRow{
			testRow(1, "10-A", "C1", "S1", "P1", "3.50", day(2025, 1, 1), day(2025, 7, 1)),
			testRow(2, "10-A", "C1", "S1", "P1", "4.00", day(2025, 7, 1), day(2025, 12, 31)),
		})
		warnings := catalog.OverlapWarnings()
		require.Len(t, warnings, 1)
		assert.Equal(t, uint(1), warnings[0].QuotaIDA)
		assert.Equal(t, uint(2), warnings[0].QuotaIDB)
	})

	t.Run("DifferentCombinationsNeverConflict", func(t *testing.T) {
		catalog := NewQuotaCatalog([]CatalogRow{
			testRow(1, "10-A", "C1", "S1", "P1", "3.50", day(2025, 1, 1), day(2025, 12, 31)),
			testRow(2, "10-A", "C1", "S1", "P2", "4.00", day(2025, 1, 1), day(2025, 12, 31)),
		})
		assert.Empty(t, catalog.OverlapWarnings())
	})

	t.Run("WarningIDsOrderedLowFirst", func(t *testing.T) {
		catalog := NewQuotaCatalog([]CatalogRow{
			testRow(9, "10-A", "C1", "S1", "P1", "3.50", day(2025, 1, 1), day(2025, 12, 31)),
			testRow(3, "10-A", "C1", "S1", "P1", "4.00", day(2025, 6, 1), day(2025, 8, 31)),
		})
		warnings := catalog.OverlapWarnings()
		require.Len(t, warnings, 1)
		assert.Equal(t, uint(3), warnings[0].QuotaIDA)
		assert.Equal(t, uint(9), warnings[0].QuotaIDB)
		assert.Contains(t, warnings[0].String(), "quotas 3 and 9 overlap")
	})
}
