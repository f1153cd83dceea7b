package gorm

import (
	"time"

	"flight-footprint/atlas/internal/models"
)

// Airport is one published airport mirrored into SQL, keyed by IATA code.
type Airport struct {
	IATA            string    `gorm:"column:iata;type:varchar(3);primaryKey"`
	Rank            int       `gorm:"column:publish_rank;not null;index"`
	Name            string    `gorm:"column:name;type:text;not null;index"`
	City            string    `gorm:"column:city;type:varchar(100)"`
	Country         string    `gorm:"column:country;type:varchar(100)"`
	Latitude        float64   `gorm:"column:latitude;not null"`
	Longitude       float64   `gorm:"column:longitude;not null"`
	PopularityScore int       `gorm:"column:popularity_score;not null"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Airport) TableName() string {
	return "airports"
}

// AirportFromRecord converts a published record; rank is its 1-based position.
func AirportFromRecord(rec models.AirportRecord, rank int) Airport {
	return Airport{
		IATA:            rec.IATACode,
		Rank:            rank,
		Name:            rec.Name,
		City:            rec.City,
		Country:         rec.Country,
		Latitude:        rec.Latitude,
		Longitude:       rec.Longitude,
		PopularityScore: rec.PopularityScore,
	}
}

// Record converts back to the published shape.
func (a Airport) Record() models.AirportRecord {
	return models.AirportRecord{
		Name:            a.Name,
		City:            a.City,
		Country:         a.Country,
		IATACode:        a.IATA,
		Latitude:        a.Latitude,
		Longitude:       a.Longitude,
		PopularityScore: a.PopularityScore,
	}
}
