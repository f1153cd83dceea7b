package airports

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"flight-footprint/atlas/internal/metrics"
	"flight-footprint/atlas/internal/models"
)

func newTestLoader() *Loader {
	l := NewLoader(CountryCodeMap{"GB": "United Kingdom", "FR": "France"}, metrics.NewMetricsRegistry(prometheus.NewRegistry()))
	l.Logger = zap.NewNop().Sugar()
	return l
}

func TestLoadOpenFlights(t *testing.T) {
	reg := NewRegistry()
	rows := []models.OpenFlightsRow{
		{Name: "Heathrow", City: "London", Country: "United Kingdom", IATA: "LHR", Latitude: "51.4706", Longitude: "-0.461941"},
		{Name: "No Code", City: "X", Country: "Y", IATA: `\N`, Latitude: "1", Longitude: "1"},
		{Name: "Empty Code", City: "X", Country: "Y", IATA: "", Latitude: "1", Longitude: "1"},
		{Name: "Long Code", City: "X", Country: "Y", IATA: "ABCD", Latitude: "1", Longitude: "1"},
		{Name: "Bad Lat", City: "X", Country: "Y", IATA: "BAD", Latitude: "north", Longitude: "1"},
		{Name: "Gatwick", City: "London", Country: "United Kingdom", IATA: "lgw", Latitude: "51.148", Longitude: "-0.19"},
	}

	stats := newTestLoader().LoadOpenFlights(reg, rows)

	if stats != (LoadStats{Accepted: 2, Dropped: 3, Failed: 1}) {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if reg.Len() != 2 {
		t.Fatalf("Expected 2 records, got %d", reg.Len())
	}
	rec, ok := reg.Get("LGW")
	if !ok {
		t.Fatal("Expected LGW to be stored upper-cased")
	}
	if rec.Country != "United Kingdom" || rec.Latitude != 51.148 {
		t.Errorf("Unexpected record: %+v", rec)
	}
}

func TestLoadOurAirports(t *testing.T) {
	reg := NewRegistry()
	rows := []models.OurAirportsRow{
		{Type: "large_airport", Name: "Charles de Gaulle International Airport", ISOCountry: "FR", Municipality: "Paris", IATA: "CDG", Latitude: "49.0128", Longitude: "2.55"},
		{Type: "small_airport", Name: "Tiny Strip", ISOCountry: "FR", Municipality: "Nowhere", IATA: "TNY", Latitude: "1", Longitude: "1"},
		{Type: "large_airport", Name: "Mystery International", ISOCountry: "QQ", Municipality: "Q", IATA: "QQQ", Latitude: "1", Longitude: "1"},
		{Type: "large_airport", Name: "No Code Airport", ISOCountry: "FR", Municipality: "Lyon", IATA: "", Latitude: "1", Longitude: "1"},
		{Type: "large_airport", Name: "Manchester Airport", ISOCountry: "gb", Municipality: "", IATA: "MAN", Latitude: "53.35", Longitude: "-2.27"},
	}

	stats := newTestLoader().LoadOurAirports(reg, rows)

	if stats != (LoadStats{Accepted: 2, Dropped: 2, Failed: 1}) {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	rec, ok := reg.Get("MAN")
	if !ok {
		t.Fatal("Expected MAN to be loaded")
	}
	if rec.City != "" {
		t.Errorf("Expected empty city for a missing municipality, got %q", rec.City)
	}
	if rec.Country != "United Kingdom" {
		t.Errorf("Expected resolved country, got %q", rec.Country)
	}
	if _, ok := reg.Get("QQQ"); ok {
		t.Error("Expected unknown country row to be skipped")
	}
}

func TestLoad_LaterSourceReplacesRecordInPlace(t *testing.T) {
	reg := NewRegistry()
	loader := newTestLoader()

	loader.LoadOpenFlights(reg, []models.OpenFlightsRow{
		{Name: "Old CDG", City: "Paris", Country: "France", IATA: "CDG", Latitude: "49", Longitude: "2.5"},
		{Name: "Orly", City: "Paris", Country: "France", IATA: "ORY", Latitude: "48.7", Longitude: "2.3"},
	})
	loader.LoadOurAirports(reg, []models.OurAirportsRow{
		{Type: "large_airport", Name: "New CDG", ISOCountry: "FR", Municipality: "Roissy", IATA: "CDG", Latitude: "49.01", Longitude: "2.55"},
	})

	records := reg.Records()
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].IATACode != "CDG" || records[0].Name != "New CDG" || records[0].City != "Roissy" {
		t.Errorf("Expected replaced CDG in first position, got %+v", records[0])
	}
	if records[1].IATACode != "ORY" {
		t.Errorf("Expected ORY second, got %+v", records[1])
	}
}

func TestLoadOurAirports_CustomTypes(t *testing.T) {
	reg := NewRegistry()
	loader := newTestLoader()
	loader.AirportTypes = []string{"large_airport", "medium_airport"}

	stats := loader.LoadOurAirports(reg, []models.OurAirportsRow{
		{Type: "medium_airport", Name: "Beauvais Airport", ISOCountry: "FR", Municipality: "Beauvais", IATA: "BVA", Latitude: "49.45", Longitude: "2.11"},
	})
	if stats.Accepted != 1 {
		t.Errorf("Expected medium airport accepted, got %+v", stats)
	}
}

func TestCountryCodeMap(t *testing.T) {
	m := NewCountryCodeMap([]models.CountryCode{
		{Name: "France", Alpha2: "FR"},
		{Name: "Duplicate France", Alpha2: "fr"},
		{Name: "Nowhere", Alpha2: "-"},
		{Name: "", Alpha2: "XX"},
		{Name: "Germany", Alpha2: " de "},
	})

	if len(m) != 2 {
		t.Fatalf("Expected 2 entries, got %d: %v", len(m), m)
	}
	name, err := m.Resolve("fr")
	if err != nil || name != "France" {
		t.Errorf("Expected France, got %q, %v", name, err)
	}
	if _, err := m.Resolve("ZZ"); !errors.Is(err, ErrUnknownCountry) {
		t.Errorf("Expected ErrUnknownCountry, got %v", err)
	}

	rows := m.Rows()
	if len(rows) != 2 || rows[0].Alpha2 != "DE" || rows[1].Alpha2 != "FR" {
		t.Errorf("Expected rows sorted by code, got %+v", rows)
	}
}
