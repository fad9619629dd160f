package businessflow

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func testRow(id uint, model, cat1, cat2, process, price string, effective, obsolete time.Time) CatalogRow {
	return CatalogRow{
		QuotaID:       id,
		ModelCode:     model,
		ModelName:     "Model " + model,
		Cat1Code:      cat1,
		Cat1Name:      "Section " + cat1,
		Cat2Code:      cat2,
		Cat2Name:      "Stage " + cat2,
		ProcessCode:   process,
		ProcessName:   "Process " + process,
		UnitPrice:     decimal.RequireFromString(price),
		EffectiveDate: effective,
		ObsoleteDate:  obsolete,
	}
}

func TestResolveByID(t *testing.T) {
	catalog := NewQuotaCatalog([]CatalogRow{
		testRow(1, "10-A", "C1", "S1", "P1", "3.50", day(2025, 1, 1), day(2025, 6, 30)),
		testRow(2, "10-A", "C1", "S1", "P1", "4.00", day(2025, 7, 1), day(2025, 12, 31)),
	})
	resolver := NewResolver(catalog)

	t.Run("FoundInsideWindow", func(t *testing.T) {
		res := resolver.ResolveByID(1, day(2025, 3, 15))
		require.Equal(t, ResolutionFound, res.Outcome)
		require.NotNil(t, res.Quota)
		assert.Equal(t, uint(1), res.Quota.QuotaID)
		assert.True(t, decimal.RequireFromString("3.50").Equal(res.Quota.UnitPrice))
	})

	t.Run("WindowBoundariesInclusive", func(t *testing.T) {
		res := resolver.ResolveByID(1, day(2025, 1, 1))
		assert.Equal(t, ResolutionFound, res.Outcome)

		res = resolver.ResolveByID(1, day(2025, 6, 30))
		assert.Equal(t, ResolutionFound, res.Outcome)
	})

	t.Run("UnknownID", func(t *testing.T) {
		res := resolver.ResolveByID(99, day(2025, 3, 15))
		assert.Equal(t, ResolutionNotFound, res.Outcome)
		assert.Nil(t, res.Quota)
	})

	t.Run("NotYetEffective", func(t *testing.T) {
		res := resolver.ResolveByID(2, day(2025, 3, 15))
		require.Equal(t, ResolutionNotYetEffective, res.Outcome)
		require.NotNil(t, res.EarliestEffective)
		assert.Equal(t, day(2025, 7, 1), *res.EarliestEffective)
	})

	t.Run("ObsoleteWithReplacement", func(t *testing.T) {
		res := resolver.ResolveByID(1, day(2025, 8, 1))
		require.Equal(t, ResolutionObsolete, res.Outcome)
		require.NotNil(t, res.ObsoleteDate)
		assert.Equal(t, day(2025, 6, 30), *res.ObsoleteDate)
		require.NotNil(t, res.Replacement)
		assert.Equal(t, uint(2), res.Replacement.QuotaID)
	})

	t.Run("ObsoleteWithoutReplacement", func(t *testing.T) {
		res := resolver.ResolveByID(2, day(2026, 2, 1))
		require.Equal(t, ResolutionObsolete, res.Outcome)
		assert.Nil(t, res.Replacement)
	})
}

func TestReplacementIgnoresOtherCombinations(t *testing.T) {
	catalog := NewQuotaCatalog([]CatalogRow{
		testRow(1, "10-A", "C1", "S1", "P1", "3.50", day(2025, 1, 1), day(2025, 6, 30)),
		// Same window shape but a different process: not a replacement.
		testRow(2, "10-A", "C1", "S1", "P2", "4.00", day(2025, 7, 1), day(2025, 12, 31)),
	})
	resolver := NewResolver(catalog)

	res := resolver.ResolveByID(1, day(2025, 12, 1))
	require.Equal(t, ResolutionObsolete, res.Outcome)
	assert.Nil(t, res.Replacement)
}

func TestResolveByCombination(t *testing.T) {
	catalog := NewQuotaCatalog([]CatalogRow{
		testRow(1, "10-A", "C1", "S1", "P1", "3.50", day(2025, 1, 1), day(2025, 3, 31)),
		testRow(2, "10-A", "C1", "S1", "P1", "4.00", day(2025, 10, 1), day(2025, 12, 31)),
	})
	resolver := NewResolver(catalog)
	key := catalog.Rows()[0].Combination()

	t.Run("Found", func(t *testing.T) {
		res := resolver.ResolveByCombination(key, day(2025, 2, 1))
		require.Equal(t, ResolutionFound, res.Outcome)
		assert.Equal(t, uint(1), res.Quota.QuotaID)
	})

	t.Run("UnknownCombinationNotFound", func(t *testing.T) {
		other := key
		other.ModelCode = "99-Z"
		res := resolver.ResolveByCombination(other, day(2025, 2, 1))
		assert.Equal(t, ResolutionNotFound, res.Outcome)
	})

	t.Run("GapNearerPastIsObsolete", func(t *testing.T) {
		// Gap runs 2025-04-01 .. 2025-09-30; April 10 is far closer to
		// the lapsed window.
		res := resolver.ResolveByCombination(key, day(2025, 4, 10))
		require.Equal(t, ResolutionObsolete, res.Outcome)
		require.NotNil(t, res.ObsoleteDate)
		assert.Equal(t, day(2025, 3, 31), *res.ObsoleteDate)
	})

	t.Run("GapNearerFutureIsNotYetEffective", func(t *testing.T) {
		res := resolver.ResolveByCombination(key, day(2025, 9, 20))
		require.Equal(t, ResolutionNotYetEffective, res.Outcome)
		require.NotNil(t, res.EarliestEffective)
		assert.Equal(t, day(2025, 10, 1), *res.EarliestEffective)
	})

	t.Run("GapEquidistantFavorsFuture", func(t *testing.T) {
		// 92 days from 2025-03-31 and 92 days to 2025-10-01.
		res := resolver.ResolveByCombination(key, day(2025, 7, 1))
		assert.Equal(t, ResolutionNotYetEffective, res.Outcome)
	})

	t.Run("BeforeAllWindows", func(t *testing.T) {
		res := resolver.ResolveByCombination(key, day(2024, 6, 1))
		require.Equal(t, ResolutionNotYetEffective, res.Outcome)
		assert.Equal(t, day(2025, 1, 1), *res.EarliestEffective)
	})

	t.Run("AfterAllWindows", func(t *testing.T) {
		res := resolver.ResolveByCombination(key, day(2026, 6, 1))
		require.Equal(t, ResolutionObsolete, res.Outcome)
		assert.Equal(t, day(2025, 12, 31), *res.ObsoleteDate)
	})
}

func TestOverlapTieBreak(t *testing.T) {
	catalog := NewQuotaCatalog([]CatalogRow{
		testRow(1, "10-A", "C1", "S1", "P1", "3.50", day(2025, 1, 1), day(2025, 12, 31)),
		testRow(2, "10-A", "C1", "S1", "P1", "4.00", day(2025, 6, 1), day(2025, 12, 31)),
	})
	key := catalog.Rows()[0].Combination()

	t.Run("LatestEffectiveWins", func(t *testing.T) {
		res := NewResolver(catalog).ResolveByCombination(key, day(2025, 8, 1))
		require.Equal(t, ResolutionFound, res.Outcome)
		assert.Equal(t, uint(2), res.Quota.QuotaID)
	})

	t.Run("EqualEffectiveDatesPreferHigherID", func(t *testing.T) {
		sameDay := NewQuotaCatalog([]CatalogRow{
			testRow(7, "10-A", "C1", "S1", "P1", "3.50", day(2025, 1, 1), day(2025, 12, 31)),
			testRow(9, "10-A", "C1", "S1", "P1", "4.00", day(2025, 1, 1), day(2025, 12, 31)),
		})
		res := NewResolver(sameDay).ResolveByCombination(key, day(2025, 8, 1))
		require.Equal(t, ResolutionFound, res.Outcome)
		assert.Equal(t, uint(9), res.Quota.QuotaID)
	})

	t.Run("CustomTieBreak", func(t *testing.T) {
		earliestWins := func(a, b CatalogRow) bool {
			return a.EffectiveDate.Before(b.EffectiveDate)
		}
		res := NewResolver(catalog).WithTieBreak(earliestWins).ResolveByCombination(key, day(2025, 8, 1))
		require.Equal(t, ResolutionFound, res.Outcome)
		assert.Equal(t, uint(1), res.Quota.QuotaID)
	})
}

func TestSingleDayWindow(t *testing.T) {
	// A window whose effective and obsolete dates coincide prices exactly
	// that one day.
	catalog := NewQuotaCatalog([]CatalogRow{
		testRow(1, "10-A", "C1", "S1", "P1", "3.50", day(2025, 5, 10), day(2025, 5, 10)),
	})
	resolver := NewResolver(catalog)

	t.Run("FoundOnTheDay", func(t *testing.T) {
		res := resolver.ResolveByID(1, day(2025, 5, 10))
		assert.Equal(t, ResolutionFound, res.Outcome)
	})

	t.Run("NotYetEffectiveTheDayBefore", func(t *testing.T) {
		res := resolver.ResolveByID(1, day(2025, 5, 9))
		require.Equal(t, ResolutionNotYetEffective, res.Outcome)
		require.NotNil(t, res.EarliestEffective)
		assert.Equal(t, day(2025, 5, 10), *res.EarliestEffective)
	})

	t.Run("ObsoleteTheDayAfter", func(t *testing.T) {
		res := resolver.ResolveByID(1, day(2025, 5, 11))
		require.Equal(t, ResolutionObsolete, res.Outcome)
		require.NotNil(t, res.ObsoleteDate)
		assert.Equal(t, day(2025, 5, 10), *res.ObsoleteDate)
	})
}

func TestOpenEndedWindowNeverLapses(t *testing.T) {
	openEnded := day(9999, 12, 31)
	catalog := NewQuotaCatalog([]CatalogRow{
		testRow(1, "10-A", "C1", "S1", "P1", "3.50", day(2025, 1, 1), openEnded),
	})
	resolver := NewResolver(catalog)

	res := resolver.ResolveByID(1, day(2099, 6, 1))
	assert.Equal(t, ResolutionFound, res.Outcome)
}
