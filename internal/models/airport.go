package models

import "math"

// AirportRecord is the unit of the published dataset.
type AirportRecord struct {
	Name            string  `json:"name" csv:"name"`
	City            string  `json:"city" csv:"city"`
	Country         string  `json:"country" csv:"country"`
	IATACode        string  `json:"iata_code" csv:"iata_code"`
	Latitude        float64 `json:"latitude" csv:"latitude"`
	Longitude       float64 `json:"longitude" csv:"longitude"`
	PopularityScore int     `json:"popularity_score" csv:"popularity_score"`
}

// HasIATA reports whether the record carries a usable 3 character IATA code.
func (a AirportRecord) HasIATA() bool {
	return len(a.IATACode) == 3
}

// HasCoordinates reports whether latitude and longitude are finite and in range.
func (a AirportRecord) HasCoordinates() bool {
	if math.IsNaN(a.Latitude) || math.IsNaN(a.Longitude) || math.IsInf(a.Latitude, 0) || math.IsInf(a.Longitude, 0) {
		return false
	}
	return a.Latitude >= -90 && a.Latitude <= 90 && a.Longitude >= -180 && a.Longitude <= 180
}

// Usable is true for records that can be looked up and mapped.
func (a AirportRecord) Usable() bool {
	return a.HasIATA() && a.HasCoordinates()
}
