package airports

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"flight-footprint/atlas/internal/models"
)

// ErrUnknownCountry is returned when an ISO code has no entry in the map.
var ErrUnknownCountry = errors.New("unknown country code")

// CountryCodeMap maps ISO 3166 alpha-2 codes to country display names.
// It only lives for the duration of a regeneration run.
type CountryCodeMap map[string]string

// NewCountryCodeMap builds a map from reference rows. Rows with an empty
// name or a code that is not two letters are ignored; the first row wins
// for duplicate codes.
func NewCountryCodeMap(rows []models.CountryCode) CountryCodeMap {
	m := make(CountryCodeMap, len(rows))
	for _, row := range rows {
		code := strings.ToUpper(strings.TrimSpace(row.Alpha2))
		name := strings.TrimSpace(row.Name)
		if len(code) != 2 || name == "" {
			continue
		}
		if _, exists := m[code]; !exists {
			m[code] = name
		}
	}
	return m
}

// Resolve returns the display name for code.
func (m CountryCodeMap) Resolve(code string) (string, error) {
	key := strings.ToUpper(strings.TrimSpace(code))
	if name, ok := m[key]; ok {
		return name, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCountry, code)
}

// Rows returns the map as reference rows sorted by code.
func (m CountryCodeMap) Rows() []models.CountryCode {
	rows := make([]models.CountryCode, 0, len(m))
	for code, name := range m {
		rows = append(rows, models.CountryCode{Name: name, Alpha2: code})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Alpha2 < rows[j].Alpha2 })
	return rows
}
