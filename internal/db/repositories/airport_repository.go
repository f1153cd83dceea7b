package repositories

import (
	"context"
	"errors"
	"strings"

	"flight-footprint/atlas/internal/models"
	"flight-footprint/atlas/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// AirportRepository handles airport table operations
type AirportRepository struct {
	db *gormlib.DB
}

// NewAirportRepository creates a new airport repository
func NewAirportRepository(db *gormlib.DB) *AirportRepository {
	return &AirportRepository{db: db}
}

// ReplaceAll swaps the table contents for records in one transaction,
// keeping their order in the rank column.
func (r *AirportRepository) ReplaceAll(ctx context.Context, records []models.AirportRecord) (int64, error) {
	rows := make([]gorm.Airport, 0, len(records))
	for i, rec := range records {
		rows = append(rows, gorm.AirportFromRecord(rec, i+1))
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gormlib.DB) error {
		if err := tx.Where("1 = 1").Delete(&gorm.Airport{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, 100).Error
	})
	if err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}

// FindByIATA finds an airport by IATA code (case-insensitive)
func (r *AirportRepository) FindByIATA(ctx context.Context, iata string) (*gorm.Airport, error) {
	var airport gorm.Airport

	err := r.db.WithContext(ctx).
		Where("iata = ?", strings.ToUpper(strings.TrimSpace(iata))).
		First(&airport).Error

	if err != nil {
		if errors.Is(err, gormlib.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &airport, nil
}

// List returns airports in published order.
func (r *AirportRepository) List(ctx context.Context, limit int) ([]gorm.Airport, error) {
	var airports []gorm.Airport
	q := r.db.WithContext(ctx).Order("publish_rank ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&airports).Error
	return airports, err
}

// Count returns total number of airports
func (r *AirportRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&gorm.Airport{}).Count(&count).Error
	return count, err
}
