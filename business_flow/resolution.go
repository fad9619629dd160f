package businessflow

import (
	"time"

	"github.com/dahe-motor/piecerate/models"
	"github.com/dahe-motor/piecerate/utils"
)

// ResolutionOutcome is the kind of a point-in-time resolution result. The
// four outcomes are mutually exclusive and exhaustive; callers branch on the
// kind and must never coerce one into another.
type ResolutionOutcome string

const (
	ResolutionFound           ResolutionOutcome = "found"
	ResolutionNotFound        ResolutionOutcome = "not_found"
	ResolutionNotYetEffective ResolutionOutcome = "not_yet_effective"
	ResolutionObsolete        ResolutionOutcome = "obsolete"
)

// Resolution is the result of resolving one logical key against a reference
// date. Failures are data, not errors: a lapsed or future price is an
// expected outcome, carried with enough context for user messaging.
type Resolution struct {
	Outcome ResolutionOutcome

	// Quota is set on Found.
	Quota *CatalogRow

	// EarliestEffective is set on NotYetEffective: the first date any
	// version of the key becomes valid.
	EarliestEffective *time.Time

	// ObsoleteDate is set on Obsolete: the end of the latest lapsed window.
	ObsoleteDate *time.Time

	// Replacement is set on Obsolete when resolving by explicit quota id
	// and another version of the same combination is valid on the date.
	Replacement *CatalogRow
}

// TieBreak reports whether a should win over b when both are valid on the
// reference date (overlapping windows, a data anomaly).
type TieBreak func(a, b CatalogRow) bool

// LatestEffectiveWins is the default tie-break: latest effective date first,
// ties broken by highest quota id (most recently created). Deterministic by
// construction.
func LatestEffectiveWins(a, b CatalogRow) bool {
	ae, be := utils.DateOnly(a.EffectiveDate), utils.DateOnly(b.EffectiveDate)
	if !ae.Equal(be) {
		return ae.After(be)
	}
	return a.QuotaID > b.QuotaID
}

// Resolver performs point-in-time resolution over one catalog snapshot.
// The zero tie-break defaults to LatestEffectiveWins; tests and callers with
// a different versioning policy may override it.
type Resolver struct {
	catalog  *QuotaCatalog
	tieBreak TieBreak
}

// NewResolver creates a resolver with the default tie-break.
func NewResolver(catalog *QuotaCatalog) *Resolver {
	return &Resolver{catalog: catalog, tieBreak: LatestEffectiveWins}
}

// WithTieBreak overrides the overlap policy.
func (r *Resolver) WithTieBreak(tb TieBreak) *Resolver {
	if tb != nil {
		r.tieBreak = tb
	}
	return r
}

// ResolveByID resolves an explicit quota id against recordDate. On an
// obsolete outcome it additionally searches the catalog for a replacement:
// any other version of the same combination valid on recordDate.
func (r *Resolver) ResolveByID(id uint, recordDate time.Time) Resolution {
	row := r.catalog.ByID(id)
	if row == nil {
		return Resolution{Outcome: ResolutionNotFound}
	}

	res := r.classify([]CatalogRow{*row}, recordDate)
	if res.Outcome != ResolutionObsolete {
		return res
	}

	// Replacement search: same combination, valid window, excluding the
	// obsolete row itself. Same tie-break as overlap resolution.
	var candidates []CatalogRow
	for _, other := range r.catalog.ByCombination(row.Combination()) {
		if other.QuotaID != id && other.ValidOn(recordDate) {
			candidates = append(candidates, other)
		}
	}
	if best := r.pickBest(candidates); best != nil {
		res.Replacement = best
	}
	return res
}

// ResolveByCombination resolves a 4-part combination key against recordDate.
func (r *Resolver) ResolveByCombination(key models.CombinationKey, recordDate time.Time) Resolution {
	return r.classify(r.catalog.ByCombination(key), recordDate)
}

// classify partitions matches by their relation to recordDate and derives
// the single outcome. Valid beats future beats past; among multiple valid
// rows the tie-break picks the winner.
func (r *Resolver) classify(matches []CatalogRow, recordDate time.Time) Resolution {
	if len(matches) == 0 {
		return Resolution{Outcome: ResolutionNotFound}
	}

	var valid, future, past []CatalogRow
	for _, row := range matches {
		switch {
		case row.ValidOn(recordDate):
			valid = append(valid, row)
		case row.FutureOn(recordDate):
			future = append(future, row)
		default:
			past = append(past, row)
		}
	}

	if best := r.pickBest(valid); best != nil {
		return Resolution{Outcome: ResolutionFound, Quota: best}
	}

	date := utils.DateOnly(recordDate)

	var earliestFuture *time.Time
	if len(future) > 0 {
		earliest := utils.DateOnly(future[0].EffectiveDate)
		for _, row := range future[1:] {
			if d := utils.DateOnly(row.EffectiveDate); d.Before(earliest) {
				earliest = d
			}
		}
		earliestFuture = &earliest
	}

	var latestPast *time.Time
	if len(past) > 0 {
		latest := utils.DateOnly(past[0].ObsoleteDate)
		for _, row := range past[1:] {
			if d := utils.DateOnly(row.ObsoleteDate); d.After(latest) {
				latest = d
			}
		}
		latestPast = &latest
	}

	// A date in the gap between a lapsed and an upcoming version reports
	// whichever boundary is nearer; ties go to the upcoming one.
	if earliestFuture != nil {
		if latestPast == nil || earliestFuture.Sub(date) <= date.Sub(*latestPast) {
			return Resolution{Outcome: ResolutionNotYetEffective, EarliestEffective: earliestFuture}
		}
	}

	return Resolution{Outcome: ResolutionObsolete, ObsoleteDate: latestPast}
}

func (r *Resolver) pickBest(rows []CatalogRow) *CatalogRow {
	if len(rows) == 0 {
		return nil
	}
	best := rows[0]
	for _, row := range rows[1:] {
		if r.tieBreak(row, best) {
			best = row
		}
	}
	return &best
}
