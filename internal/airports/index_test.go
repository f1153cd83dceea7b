package airports

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"flight-footprint/atlas/internal/models"
)

func sampleRecords() []models.AirportRecord {
	return []models.AirportRecord{
		heathrow(),
		{Name: "Gatwick Airport", City: "London", Country: "United Kingdom", IATACode: "LGW", Latitude: 51.148, Longitude: -0.19},
		{Name: "Charles de Gaulle International Airport", City: "Paris", Country: "France", IATACode: "CDG", Latitude: 49.01, Longitude: 2.55},
		{Name: "London City Airport", City: "London", Country: "United Kingdom", IATACode: "LCY", Latitude: 51.5, Longitude: 0.05},
		{Name: "Stansted Airport", City: "London", Country: "United Kingdom", IATACode: "STN", Latitude: 51.88, Longitude: 0.23},
		{Name: "Luton Airport", City: "London", Country: "United Kingdom", IATACode: "LTN", Latitude: 51.87, Longitude: -0.37},
		{Name: "Southend Airport", City: "London", Country: "United Kingdom", IATACode: "SEN", Latitude: 51.57, Longitude: 0.69},
		{Name: "Orly Airport", City: "Paris", Country: "France", IATACode: "ORY", Latitude: 48.72, Longitude: 2.37},
	}
}

func TestSuggest_FindsHeathrow(t *testing.T) {
	ix := NewIndex(sampleRecords())

	got := ix.Suggest("heath")
	if len(got) != 1 || got[0].IATACode != "LHR" {
		t.Fatalf("Expected LHR, got %+v", got)
	}
}

func TestSuggest_CapAndDatasetOrder(t *testing.T) {
	ix := NewIndex(sampleRecords())

	got := ix.Suggest("LONDON")
	if len(got) != 5 {
		t.Fatalf("Expected 5 suggestions, got %d", len(got))
	}
	want := []string{"LHR", "LGW", "LCY", "STN", "LTN"}
	for i, code := range want {
		if got[i].IATACode != code {
			t.Errorf("Position %d: expected %s, got %s", i, code, got[i].IATACode)
		}
	}
}

func TestSuggest_EmptyQueryReturnsFirstFive(t *testing.T) {
	records := sampleRecords()
	ix := NewIndex(records)

	got := ix.Suggest("")
	if len(got) != 5 {
		t.Fatalf("Expected 5 suggestions, got %d", len(got))
	}
	for i := range got {
		if got[i].IATACode != records[i].IATACode {
			t.Errorf("Position %d: expected %s, got %s", i, records[i].IATACode, got[i].IATACode)
		}
	}
}

func TestSuggest_MatchesCountry(t *testing.T) {
	ix := NewIndex(sampleRecords())

	got := ix.Suggest("fran")
	if len(got) != 2 || got[0].IATACode != "CDG" || got[1].IATACode != "ORY" {
		t.Errorf("Expected CDG and ORY, got %+v", got)
	}
}

func TestSuggest_NoMatchIsEmptyNotNil(t *testing.T) {
	ix := NewIndex(sampleRecords())

	got := ix.Suggest("zzzz")
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", got)
	}
}

func TestSuggest_CompletenessUpToCap(t *testing.T) {
	var records []models.AirportRecord
	for i := 0; i < 20; i++ {
		records = append(records, models.AirportRecord{
			Name:     fmt.Sprintf("Field %02d Airport", i),
			City:     "Town",
			Country:  "Land",
			IATACode: fmt.Sprintf("F%02d", i),
		})
	}
	ix := NewIndex(records)

	for _, q := range []string{"field 0", "1", "airport", "town", "land", "07"} {
		got := ix.Suggest(q)
		if len(got) > 5 {
			t.Fatalf("Query %q returned %d results", q, len(got))
		}
		var matching []string
		for _, rec := range records {
			if strings.Contains(strings.ToLower(rec.Name), strings.ToLower(q)) ||
				strings.Contains(strings.ToLower(rec.City), strings.ToLower(q)) ||
				strings.Contains(strings.ToLower(rec.Country), strings.ToLower(q)) {
				matching = append(matching, rec.IATACode)
			}
		}
		if len(matching) > 5 {
			matching = matching[:5]
		}
		if len(got) != len(matching) {
			t.Fatalf("Query %q: expected %d results, got %d", q, len(matching), len(got))
		}
		for i := range matching {
			if got[i].IATACode != matching[i] {
				t.Errorf("Query %q position %d: expected %s, got %s", q, i, matching[i], got[i].IATACode)
			}
		}
	}
}

func TestCoordinates(t *testing.T) {
	records := append(sampleRecords(), models.AirportRecord{
		Name: "Gatwick Airport", City: "Elsewhere", IATACode: "XXX", Latitude: 1, Longitude: 1,
	})
	ix := NewIndex(records)

	rec, err := ix.Coordinates("Gatwick Airport")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.IATACode != "LGW" {
		t.Errorf("Expected first match LGW, got %s", rec.IATACode)
	}

	if _, err := ix.Coordinates("gatwick airport"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for case mismatch, got %v", err)
	}
	if _, err := ix.Coordinates("Nowhere"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestByIATA(t *testing.T) {
	ix := NewIndex(sampleRecords())

	rec, err := ix.ByIATA(" cdg ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.City != "Paris" {
		t.Errorf("Expected Paris, got %s", rec.City)
	}

	if _, err := ix.ByIATA("XYZ"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDidYouMean(t *testing.T) {
	ix := NewIndex(sampleRecords())

	got := ix.DidYouMean("heatrow", 3)
	if len(got) == 0 || got[0] != "Heathrow International Airport" {
		t.Errorf("Expected Heathrow hint, got %v", got)
	}

	got = ix.DidYouMean("pariss", 3)
	if len(got) != 2 || got[0] != "Charles de Gaulle International Airport" || got[1] != "Orly Airport" {
		t.Errorf("Expected both Paris airports in dataset order, got %v", got)
	}

	if got := ix.DidYouMean("qqqqqqqq", 3); len(got) != 0 {
		t.Errorf("Expected no hints, got %v", got)
	}
	if got := ix.DidYouMean("ab", 3); got != nil {
		t.Errorf("Expected no hints for short queries, got %v", got)
	}
}

func TestDidYouMean_LongQuery(t *testing.T) {
	records := make([]models.AirportRecord, 0, 4000)
	for i := 0; i < 4000; i++ {
		records = append(records, models.AirportRecord{
			Name:     fmt.Sprintf("Airport Number %d", i),
			City:     fmt.Sprintf("City %d", i),
			IATACode: fmt.Sprintf("%03d", i%1000),
		})
	}
	ix := NewIndex(records)

	long := strings.Repeat("z", 8000)
	start := time.Now()
	if got := ix.Suggest(long); len(got) != 0 {
		t.Fatalf("Expected no suggestions, got %d", len(got))
	}
	if got := ix.DidYouMean(long, 3); got != nil {
		t.Errorf("Expected no hints for an oversized query, got %v", got)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Long query took %s", elapsed)
	}

	atLimit := strings.Repeat("z", maxSuggestionQueryRunes)
	if got := ix.DidYouMean(atLimit, 3); len(got) != 0 {
		t.Errorf("Expected no hints, got %v", got)
	}
}

func TestDidYouMean_SkipsTokensOfDistantLength(t *testing.T) {
	ix := NewIndex([]models.AirportRecord{
		{Name: "Heathrow Airport", City: "London", IATACode: "LHR"},
	})
	if got := ix.DidYouMean("londonnn", 3); len(got) != 1 {
		t.Errorf("Expected hint within length bound, got %v", got)
	}
	if got := ix.DidYouMean("londonnnn", 3); len(got) != 0 {
		t.Errorf("Expected no hint beyond length bound, got %v", got)
	}
}
