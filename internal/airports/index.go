package airports

import (
	"errors"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"flight-footprint/atlas/internal/constants"
	"flight-footprint/atlas/internal/models"
)

// ErrNotFound is returned when no record matches a lookup.
var ErrNotFound = errors.New("airport not found")

// maxSuggestionDistance bounds the edit distance for did-you-mean hints.
const maxSuggestionDistance = 2

// maxSuggestionQueryRunes caps the query length DidYouMean will consider.
const maxSuggestionQueryRunes = 64

type foldedRecord struct {
	name    string
	city    string
	country string
}

// Index answers read-only queries over one published dataset.
// It is safe for concurrent use once built.
type Index struct {
	records []models.AirportRecord
	folded  []foldedRecord
	byName  map[string]int
	byIATA  map[string]int
}

// NewIndex builds an index over records, keeping their order.
func NewIndex(records []models.AirportRecord) *Index {
	ix := &Index{
		records: records,
		folded:  make([]foldedRecord, len(records)),
		byName:  make(map[string]int, len(records)),
		byIATA:  make(map[string]int, len(records)),
	}
	for i, rec := range records {
		ix.folded[i] = foldedRecord{
			name:    strings.ToLower(rec.Name),
			city:    strings.ToLower(rec.City),
			country: strings.ToLower(rec.Country),
		}
		if _, seen := ix.byName[rec.Name]; !seen {
			ix.byName[rec.Name] = i
		}
		code := strings.ToUpper(rec.IATACode)
		if _, seen := ix.byIATA[code]; code != "" && !seen {
			ix.byIATA[code] = i
		}
	}
	return ix
}

// Len returns the number of indexed records.
func (ix *Index) Len() int {
	return len(ix.records)
}

// Records returns the indexed records in dataset order.
func (ix *Index) Records() []models.AirportRecord {
	return ix.records
}

// Suggest returns up to constants.SuggestLimit records whose name, city or
// country contains query, case-insensitively, in dataset order.
// An empty query matches everything.
func (ix *Index) Suggest(query string) []models.AirportRecord {
	q := strings.ToLower(query)
	out := make([]models.AirportRecord, 0, constants.SuggestLimit)
	for i, f := range ix.folded {
		if len(out) == constants.SuggestLimit {
			break
		}
		if strings.Contains(f.name, q) || strings.Contains(f.city, q) || strings.Contains(f.country, q) {
			out = append(out, ix.records[i])
		}
	}
	return out
}

// Coordinates returns the first record, in dataset order, whose name equals name exactly.
func (ix *Index) Coordinates(name string) (models.AirportRecord, error) {
	i, ok := ix.byName[name]
	if !ok {
		return models.AirportRecord{}, ErrNotFound
	}
	return ix.records[i], nil
}

// ByIATA looks a record up by IATA code, ignoring case.
func (ix *Index) ByIATA(code string) (models.AirportRecord, error) {
	i, ok := ix.byIATA[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return models.AirportRecord{}, ErrNotFound
	}
	return ix.records[i], nil
}

// DidYouMean returns up to n distinct record names whose name, city or a
// word of the name is within a small edit distance of query. Closer
// matches come first; equal distances keep dataset order.
func (ix *Index) DidYouMean(query string, n int) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	qLen := utf8.RuneCountInString(q)
	if n <= 0 || qLen <= maxSuggestionDistance || qLen > maxSuggestionQueryRunes {
		return nil
	}

	type candidate struct {
		name     string
		distance int
		pos      int
	}
	var candidates []candidate
	seen := make(map[string]bool)

	for i, f := range ix.folded {
		best := maxSuggestionDistance + 1
		for _, token := range append([]string{f.name, f.city}, strings.Fields(f.name)...) {
			if token == "" {
				continue
			}
			// the distance is at least the length difference
			if diff := utf8.RuneCountInString(token) - qLen; diff > maxSuggestionDistance || -diff > maxSuggestionDistance {
				continue
			}
			if d := levenshtein.ComputeDistance(q, token); d < best {
				best = d
			}
		}
		name := ix.records[i].Name
		if best <= maxSuggestionDistance && !seen[name] {
			seen[name] = true
			candidates = append(candidates, candidate{name: name, distance: best, pos: i})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.name
	}
	return names
}
