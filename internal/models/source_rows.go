package models

// OpenFlightsHeader names the positional columns of OpenFlights airports.dat.
var OpenFlightsHeader = []string{
	"id", "name", "city", "country", "iata", "icao",
	"latitude", "longitude", "altitude", "timezone", "dst", "tz_database", "type", "source",
}

// OpenFlightsRow is one line of airports.dat.
// Coordinates stay as strings so the loader can report parse failures per row.
type OpenFlightsRow struct {
	Name      string `csv:"name"`
	City      string `csv:"city"`
	Country   string `csv:"country"`
	IATA      string `csv:"iata"`
	ICAO      string `csv:"icao"`
	Latitude  string `csv:"latitude"`
	Longitude string `csv:"longitude"`
}

// OurAirportsRow is one line of the OurAirports airports.csv export.
type OurAirportsRow struct {
	Ident        string `csv:"ident"`
	Type         string `csv:"type"`
	Name         string `csv:"name"`
	Latitude     string `csv:"latitude_deg"`
	Longitude    string `csv:"longitude_deg"`
	ISOCountry   string `csv:"iso_country"`
	Municipality string `csv:"municipality"`
	IATA         string `csv:"iata_code"`
}

// CountryCode is one line of the iso.csv snapshot.
type CountryCode struct {
	Name   string `csv:"name"`
	Alpha2 string `csv:"alpha-2"`
}
