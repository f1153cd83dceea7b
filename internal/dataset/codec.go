package dataset

import (
	"bytes"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"flight-footprint/atlas/internal/models"
)

// datasetJSON keeps non-ASCII and HTML characters such as '&' literal.
var datasetJSON = jsoniter.Config{
	EscapeHTML:             false,
	ValidateJsonRawMessage: true,
}.Froze()

// Encode writes records as a JSON array with two-space indentation.
func Encode(w io.Writer, records []models.AirportRecord) error {
	if records == nil {
		records = []models.AirportRecord{}
	}
	enc := datasetJSON.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}
	return nil
}

// storedRecord accepts scores written as floats by older pipelines.
type storedRecord struct {
	Name            string  `json:"name"`
	City            string  `json:"city"`
	Country         string  `json:"country"`
	IATACode        string  `json:"iata_code"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	PopularityScore float64 `json:"popularity_score"`
}

// Decode reads a dataset JSON array. Fractional popularity scores are
// truncated toward zero.
func Decode(r io.Reader) ([]models.AirportRecord, error) {
	var stored []storedRecord
	if err := datasetJSON.NewDecoder(r).Decode(&stored); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	if stored == nil {
		return nil, nil
	}
	records := make([]models.AirportRecord, len(stored))
	for i, s := range stored {
		records[i] = models.AirportRecord{
			Name:            s.Name,
			City:            s.City,
			Country:         s.Country,
			IATACode:        s.IATACode,
			Latitude:        s.Latitude,
			Longitude:       s.Longitude,
			PopularityScore: int(s.PopularityScore),
		}
	}
	return records, nil
}

// Preview renders the first limit records as indented JSON. A limit of zero
// or less renders every record.
func Preview(records []models.AirportRecord, limit int) ([]byte, error) {
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	var buf bytes.Buffer
	if err := Encode(&buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
