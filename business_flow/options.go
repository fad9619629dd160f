package businessflow

import (
	"sort"
	"time"
)

// Option is one selectable {value, label} pair at a cascade level.
type Option struct {
	Value string
	Label string
}

// CatPair is a (cat1, cat2) membership marker on a model option.
type CatPair struct {
	Cat1Code string
	Cat2Code string
}

// ModelOption is a model annotated with every (cat1, cat2) pair under which
// it has at least one quota, so a client can test membership without
// re-querying.
type ModelOption struct {
	Option
	Pairs []CatPair
}

// OptionsBundle carries everything a client needs to drive the progressive
// category -> category -> model -> process selection purely in memory: the
// three option levels plus the flat list of fully-qualified quota rows from
// which they were derived.
type OptionsBundle struct {
	Cat1Options  []Option
	Cat2ByCat1   map[string][]Option
	ModelOptions []ModelOption
	Combinations []CatalogRow
}

// BuildOptions derives the cascade option sets from the catalog snapshot.
// With a date, only quotas valid on it contribute; without one, every quota
// version contributes, supporting historical browsing. The four outputs are
// mutually consistent by construction: all levels are projections of
// Combinations.
func BuildOptions(catalog *QuotaCatalog, date *time.Time) OptionsBundle {
	var combos []CatalogRow
	for _, row := range catalog.Rows() {
		if date == nil || row.ValidOn(*date) {
			combos = append(combos, row)
		}
	}

	cat1Labels := make(map[string]string)
	cat2Labels := make(map[string]string)
	cat2Sets := make(map[string]map[string]struct{})
	modelLabels := make(map[string]string)
	modelPairs := make(map[string]map[CatPair]struct{})

	for _, row := range combos {
		if _, ok := cat1Labels[row.Cat1Code]; !ok {
			cat1Labels[row.Cat1Code] = optionLabel(row.Cat1Code, row.Cat1Name)
		}
		if _, ok := cat2Labels[row.Cat2Code]; !ok {
			cat2Labels[row.Cat2Code] = optionLabel(row.Cat2Code, row.Cat2Name)
		}

		set, ok := cat2Sets[row.Cat1Code]
		if !ok {
			set = make(map[string]struct{})
			cat2Sets[row.Cat1Code] = set
		}
		set[row.Cat2Code] = struct{}{}

		if _, ok := modelLabels[row.ModelCode]; !ok {
			modelLabels[row.ModelCode] = optionLabel(row.ModelCode, row.ModelName)
		}
		pairs, ok := modelPairs[row.ModelCode]
		if !ok {
			pairs = make(map[CatPair]struct{})
			modelPairs[row.ModelCode] = pairs
		}
		pairs[CatPair{Cat1Code: row.Cat1Code, Cat2Code: row.Cat2Code}] = struct{}{}
	}

	bundle := OptionsBundle{
		Cat2ByCat1:   make(map[string][]Option, len(cat2Sets)),
		Combinations: combos,
	}

	for code, label := range cat1Labels {
		bundle.Cat1Options = append(bundle.Cat1Options, Option{Value: code, Label: label})
	}
	sortOptions(bundle.Cat1Options)

	for cat1, set := range cat2Sets {
		opts := make([]Option, 0, len(set))
		for code := range set {
			opts = append(opts, Option{Value: code, Label: cat2Labels[code]})
		}
		sortOptions(opts)
		bundle.Cat2ByCat1[cat1] = opts
	}

	for code, label := range modelLabels {
		pairs := make([]CatPair, 0, len(modelPairs[code]))
		for pair := range modelPairs[code] {
			pairs = append(pairs, pair)
		}
		sort.Slice(pairs, func(i, j int) bool {
			if pairs[i].Cat1Code != pairs[j].Cat1Code {
				return pairs[i].Cat1Code < pairs[j].Cat1Code
			}
			return pairs[i].Cat2Code < pairs[j].Cat2Code
		})
		bundle.ModelOptions = append(bundle.ModelOptions, ModelOption{
			Option: Option{Value: code, Label: label},
			Pairs:  pairs,
		})
	}
	sort.Slice(bundle.ModelOptions, func(i, j int) bool {
		return CompareModelCodes(bundle.ModelOptions[i].Value, bundle.ModelOptions[j].Value)
	})

	return bundle
}

func sortOptions(opts []Option) {
	sort.Slice(opts, func(i, j int) bool { return opts[i].Value < opts[j].Value })
}

func optionLabel(code, name string) string {
	if name == "" {
		return code
	}
	return code + " (" + name + ")"
}
