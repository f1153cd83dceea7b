package airports

import (
	"errors"

	"github.com/golang/geo/s2"

	"flight-footprint/atlas/internal/models"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// ErrInvalidPassengers is returned when fewer than one passenger is requested.
var ErrInvalidPassengers = errors.New("passengers must be at least 1")

// EmissionsEstimate is the CO2 estimate for one itinerary.
type EmissionsEstimate struct {
	Origin             string  `json:"origin"`
	Destination        string  `json:"destination"`
	DistanceKm         float64 `json:"distance_km"`
	RoundTrip          bool    `json:"round_trip"`
	Passengers         int     `json:"passengers"`
	FactorKgPerKm      float64 `json:"factor_kg_per_km"`
	EmissionsKg        float64 `json:"emissions_kg"`
	EmissionsPerPerson float64 `json:"emissions_per_person_kg"`
}

// GreatCircleKm returns the surface distance between two airports in kilometres.
func GreatCircleKm(a, b models.AirportRecord) float64 {
	from := s2.LatLngFromDegrees(a.Latitude, a.Longitude)
	to := s2.LatLngFromDegrees(b.Latitude, b.Longitude)
	return from.Distance(to).Radians() * EarthRadiusKm
}

// EmissionFactor returns kg CO2 per km for a one-way flight of distanceKm.
func EmissionFactor(distanceKm float64) float64 {
	switch {
	case distanceKm < 500:
		return 0.15
	case distanceKm < 3000:
		return 0.12
	default:
		return 0.11
	}
}

// Estimate computes the emissions of flying from origin to destination.
// The factor is chosen on the one-way distance; a round trip doubles the distance.
func Estimate(origin, destination models.AirportRecord, roundTrip bool, passengers int) (EmissionsEstimate, error) {
	if passengers < 1 {
		return EmissionsEstimate{}, ErrInvalidPassengers
	}

	oneWay := GreatCircleKm(origin, destination)
	factor := EmissionFactor(oneWay)
	distance := oneWay
	if roundTrip {
		distance *= 2
	}
	total := distance * factor * float64(passengers)

	return EmissionsEstimate{
		Origin:             origin.IATACode,
		Destination:        destination.IATACode,
		DistanceKm:         distance,
		RoundTrip:          roundTrip,
		Passengers:         passengers,
		FactorKgPerKm:      factor,
		EmissionsKg:        total,
		EmissionsPerPerson: total / float64(passengers),
	}, nil
}
