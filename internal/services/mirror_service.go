package services

import (
	"context"

	"flight-footprint/atlas/internal/airports"
	"flight-footprint/atlas/internal/models"
	gormModels "flight-footprint/atlas/internal/models/gorm"
)

// MaxMirrorListLimit caps one page of the mirrored airport list.
const MaxMirrorListLimit = 500

// MirrorReader reads back the SQL copy of the published dataset.
type MirrorReader interface {
	FindByIATA(ctx context.Context, iata string) (*gormModels.Airport, error)
	List(ctx context.Context, limit int) ([]gormModels.Airport, error)
	Count(ctx context.Context) (int64, error)
}

// MirrorService serves the SQL mirror in the published record shape.
type MirrorService struct {
	repo MirrorReader
}

func NewMirrorService(repo MirrorReader) *MirrorService {
	return &MirrorService{repo: repo}
}

// Airport returns the mirrored record for an IATA code.
func (s *MirrorService) Airport(ctx context.Context, iata string) (models.AirportRecord, error) {
	row, err := s.repo.FindByIATA(ctx, iata)
	if err != nil {
		return models.AirportRecord{}, err
	}
	if row == nil {
		return models.AirportRecord{}, airports.ErrNotFound
	}
	return row.Record(), nil
}

// List returns up to limit mirrored records in published order.
func (s *MirrorService) List(ctx context.Context, limit int) ([]models.AirportRecord, error) {
	if limit <= 0 || limit > MaxMirrorListLimit {
		limit = MaxMirrorListLimit
	}
	rows, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	records := make([]models.AirportRecord, len(rows))
	for i, row := range rows {
		records[i] = row.Record()
	}
	return records, nil
}

// Count returns the number of mirrored records.
func (s *MirrorService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
