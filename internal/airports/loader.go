package airports

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"flight-footprint/atlas/internal/constants"
	"flight-footprint/atlas/internal/logging"
	"flight-footprint/atlas/internal/metrics"
	"flight-footprint/atlas/internal/models"
)

// DefaultAirportTypes are the OurAirports types kept when none are configured.
var DefaultAirportTypes = []string{"large_airport"}

// openFlightsNull is how airports.dat spells a missing value.
const openFlightsNull = `\N`

// LoadStats summarizes one source pass.
// Dropped rows were filtered on purpose; Failed rows could not be parsed or resolved.
type LoadStats struct {
	Accepted int
	Dropped  int
	Failed   int
}

// Loader normalizes raw source rows into a Registry.
type Loader struct {
	Countries    CountryCodeMap
	AirportTypes []string
	Logger       *zap.SugaredLogger
	Metrics      *metrics.MetricsRegistry
}

// NewLoader returns a loader resolving OurAirports country codes through countries.
func NewLoader(countries CountryCodeMap, metricsReg *metrics.MetricsRegistry) *Loader {
	return &Loader{
		Countries:    countries,
		AirportTypes: DefaultAirportTypes,
		Logger:       logging.GetLogger(),
		Metrics:      metricsReg,
	}
}

// LoadOpenFlights merges airports.dat rows into reg. Country names are taken verbatim.
func (l *Loader) LoadOpenFlights(reg *Registry, rows []models.OpenFlightsRow) LoadStats {
	var stats LoadStats
	for i, row := range rows {
		iata, ok := normalizeIATA(row.IATA)
		if !ok {
			stats.Dropped++
			l.skip(constants.SourceOpenFlights, constants.SkipReasonMalformedIATA)
			continue
		}

		lat, lon, err := parseCoordinates(row.Latitude, row.Longitude)
		if err != nil {
			stats.Failed++
			l.rowError(constants.SourceOpenFlights, i+1, iata, constants.SkipReasonBadCoordinates, err)
			continue
		}

		reg.Put(models.AirportRecord{
			Name:      strings.TrimSpace(row.Name),
			City:      strings.TrimSpace(row.City),
			Country:   strings.TrimSpace(row.Country),
			IATACode:  iata,
			Latitude:  lat,
			Longitude: lon,
		})
		stats.Accepted++
	}
	l.logger().Infow("Loaded source rows",
		"source", constants.SourceOpenFlights,
		"accepted", stats.Accepted,
		"dropped", stats.Dropped,
		"failed", stats.Failed,
	)
	return stats
}

// LoadOurAirports merges airports.csv rows into reg, replacing any record
// already stored under the same IATA code.
func (l *Loader) LoadOurAirports(reg *Registry, rows []models.OurAirportsRow) LoadStats {
	var stats LoadStats
	types := l.AirportTypes
	if len(types) == 0 {
		types = DefaultAirportTypes
	}

	for i, row := range rows {
		if !containsExact(types, strings.TrimSpace(row.Type)) {
			stats.Dropped++
			l.skip(constants.SourceOurAirports, constants.SkipReasonFilteredType)
			continue
		}

		iata, ok := normalizeIATA(row.IATA)
		if !ok {
			stats.Dropped++
			l.skip(constants.SourceOurAirports, constants.SkipReasonMalformedIATA)
			continue
		}

		lat, lon, err := parseCoordinates(row.Latitude, row.Longitude)
		if err != nil {
			stats.Failed++
			l.rowError(constants.SourceOurAirports, i+1, iata, constants.SkipReasonBadCoordinates, err)
			continue
		}

		country, err := l.Countries.Resolve(row.ISOCountry)
		if err != nil {
			stats.Failed++
			l.rowError(constants.SourceOurAirports, i+1, iata, constants.SkipReasonUnknownCountry, err)
			continue
		}

		name := strings.TrimSpace(row.Name)
		reg.Put(models.AirportRecord{
			Name:      name,
			City:      strings.TrimSpace(row.Municipality),
			Country:   country,
			IATACode:  iata,
			Latitude:  lat,
			Longitude: lon,
		})
		stats.Accepted++
	}
	l.logger().Infow("Loaded source rows",
		"source", constants.SourceOurAirports,
		"accepted", stats.Accepted,
		"dropped", stats.Dropped,
		"failed", stats.Failed,
	)
	return stats
}

func (l *Loader) logger() *zap.SugaredLogger {
	if l.Logger != nil {
		return l.Logger
	}
	return logging.GetLogger()
}

func (l *Loader) skip(source constants.SourceName, reason string) {
	if l.Metrics != nil {
		l.Metrics.RowsSkippedTotal.WithLabelValues(string(source), reason).Inc()
	}
}

// rowError logs a skipped row; row is the 1-based position among decoded rows.
func (l *Loader) rowError(source constants.SourceName, row int, iata, reason string, err error) {
	l.skip(source, reason)
	l.logger().Warnw("Skipping source row",
		"source", source,
		"row", row,
		"iata", iata,
		"reason", reason,
		"error", err.Error(),
	)
}

// normalizeIATA trims and upper-cases a code and reports whether it is a
// usable 3 character code.
func normalizeIATA(raw string) (string, bool) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" || code == openFlightsNull || len(code) != 3 {
		return "", false
	}
	return code, true
}

func parseCoordinates(latRaw, lonRaw string) (float64, float64, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(latRaw), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse latitude %q: %w", latRaw, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonRaw), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse longitude %q: %w", lonRaw, err)
	}
	point := models.AirportRecord{Latitude: lat, Longitude: lon}
	if !point.HasCoordinates() {
		return 0, 0, fmt.Errorf("coordinates out of range: %v,%v", lat, lon)
	}
	return lat, lon, nil
}

func containsExact(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
