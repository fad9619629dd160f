package businessflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOptions(t *testing.T) {
	catalog := NewQuotaCatalog([]CatalogRow{
		testRow(1, "10-A", "C1", "S1", "P1", "3.50", day(2025, 1, 1), day(2025, 12, 31)),
		testRow(2, "10-A", "C1", "S2", "P1", "4.00", day(2025, 1, 1), day(2025, 12, 31)),
		testRow(3, "2-B", "C2", "S1", "P2", "2.00", day(2025, 1, 1), day(2025, 12, 31)),
		testRow(4, "2-B", "C1", "S1", "P1", "2.10", day(2024, 1, 1), day(2024, 12, 31)),
	})

	t.Run("WithoutDateEveryVersionContributes", func(t *testing.T) {
		bundle := BuildOptions(catalog, nil)
		assert.Len(t, bundle.Combinations, 4)
		require.Len(t, bundle.Cat1Options, 2)
		assert.Equal(t, "C1", bundle.Cat1Options[0].Value)
		assert.Equal(t, "C1 (Section C1)", bundle.Cat1Options[0].Label)
	})

	t.Run("DateFiltersLapsedVersions", func(t *testing.T) {
		date := day(2025, 6, 1)
		bundle := BuildOptions(catalog, &date)
		assert.Len(t, bundle.Combinations, 3)

		// Quota 4 lapsed in 2024, so 2-B carries only the C2/S1 pair.
		var model2B *ModelOption
		for i := range bundle.ModelOptions {
			if bundle.ModelOptions[i].Value == "2-B" {
				model2B = &bundle.ModelOptions[i]
			}
		}
		require.NotNil(t, model2B)
		require.Len(t, model2B.Pairs, 1)
		assert.Equal(t, CatPair{Cat1Code: "C2", Cat2Code: "S1"}, model2B.Pairs[0])
	})

	t.Run("Cat2CascadesPerCat1", func(t *testing.T) {
		date := day(2025, 6, 1)
		bundle := BuildOptions(catalog, &date)
		require.Len(t, bundle.Cat2ByCat1["C1"], 2)
		assert.Equal(t, "S1", bundle.Cat2ByCat1["C1"][0].Value)
		assert.Equal(t, "S2", bundle.Cat2ByCat1["C1"][1].Value)
		require.Len(t, bundle.Cat2ByCat1["C2"], 1)
		assert.Equal(t, "S1", bundle.Cat2ByCat1["C2"][0].Value)
	})

	t.Run("ModelsInNumericPrefixOrder", func(t *testing.T) {
		bundle := BuildOptions(catalog, nil)
		require.Len(t, bundle.ModelOptions, 2)
		assert.Equal(t, "2-B", bundle.ModelOptions[0].Value)
		assert.Equal(t, "10-A", bundle.ModelOptions[1].Value)
	})

	t.Run("EmptyCatalog", func(t *testing.T) {
		bundle := BuildOptions(NewQuotaCatalog(nil), nil)
		assert.Empty(t, bundle.Cat1Options)
		assert.Empty(t, bundle.ModelOptions)
		assert.Empty(t, bundle.Combinations)
	})
}

func TestBuildOptionsDeterministic(t *testing.T) {
	// An unchanged catalog yields byte-for-byte identical bundles, with
	// and without a date, so cached bundles never disagree with rebuilds.
	catalog := NewQuotaCatalog([]CatalogRow{
		testRow(1, "10-A", "C1", "S1", "P1", "3.50", day(2025, 1, 1), day(2025, 12, 31)),
		testRow(2, "10-A", "C1", "S2", "P1", "4.00", day(2025, 1, 1), day(2025, 12, 31)),
		testRow(3, "2-B", "C2", "S1", "P2", "2.00", day(2025, 1, 1), day(2025, 12, 31)),
	})

	first := BuildOptions(catalog, nil)
	second := BuildOptions(catalog, nil)
	assert.Equal(t, first, second)

	date := day(2025, 6, 1)
	firstDated := BuildOptions(catalog, &date)
	secondDated := BuildOptions(catalog, &date)
	assert.Equal(t, firstDated, secondDated)
}

func TestOptionLabelFallsBackToCode(t *testing.T) {
	row := testRow(1, "10-A", "C1", "S1", "P1", "1.00", day(2025, 1, 1), day(2025, 12, 31))
	row.Cat1Name = ""
	bundle := BuildOptions(NewQuotaCatalog([]CatalogRow{row}), nil)
	require.Len(t, bundle.Cat1Options, 1)
	assert.Equal(t, "C1", bundle.Cat1Options[0].Label)
}
