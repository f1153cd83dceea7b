package airports

import "flight-footprint/atlas/internal/models"

// Registry is the per-run mapping from IATA code to AirportRecord.
// Iteration follows first-insertion order; Put on an existing code replaces
// the whole record in place.
type Registry struct {
	order   []string
	records map[string]models.AirportRecord
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{records: make(map[string]models.AirportRecord)}
}

// Put stores rec under its IATA code, replacing any earlier record.
// It reports whether an existing record was replaced.
func (r *Registry) Put(rec models.AirportRecord) bool {
	_, exists := r.records[rec.IATACode]
	if !exists {
		r.order = append(r.order, rec.IATACode)
	}
	r.records[rec.IATACode] = rec
	return exists
}

// Get returns the record stored for code.
func (r *Registry) Get(code string) (models.AirportRecord, bool) {
	rec, ok := r.records[code]
	return rec, ok
}

// Len returns the number of distinct IATA codes.
func (r *Registry) Len() int {
	return len(r.order)
}

// Records returns a copy of all records in insertion order.
func (r *Registry) Records() []models.AirportRecord {
	out := make([]models.AirportRecord, 0, len(r.order))
	for _, code := range r.order {
		out = append(out, r.records[code])
	}
	return out
}
