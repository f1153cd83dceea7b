package airports

import (
	"sort"
	"strings"

	"flight-footprint/atlas/internal/models"
)

// Eligible reports whether a record may appear in the published dataset:
// it needs a usable IATA code and coordinates, and a name that mentions
// one of the eligible terms.
func (c ScoringConfig) Eligible(a models.AirportRecord) bool {
	if !a.Usable() {
		return false
	}
	return containsAny(strings.ToLower(a.Name), c.EligibleTerms)
}

// Publish filters, scores and ranks records. The input slice is not modified.
func Publish(records []models.AirportRecord, cfg ScoringConfig) []models.AirportRecord {
	out := make([]models.AirportRecord, 0, len(records))
	for _, rec := range records {
		if !cfg.Eligible(rec) {
			continue
		}
		rec.PopularityScore = cfg.Score(rec)
		out = append(out, rec)
	}
	return Rank(out)
}

// Rank orders records by popularity score descending, then city ascending.
// The sort is stable, so full ties keep their input order.
func Rank(records []models.AirportRecord) []models.AirportRecord {
	out := make([]models.AirportRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PopularityScore != out[j].PopularityScore {
			return out[i].PopularityScore > out[j].PopularityScore
		}
		return out[i].City < out[j].City
	})
	return out
}

// Eligible applies the default eligibility terms.
func Eligible(a models.AirportRecord) bool {
	return defaultScoring.Eligible(a)
}
