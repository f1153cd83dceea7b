package dtos

import (
	"time"

	"flight-footprint/atlas/internal/models"
)

// APIResponse is the envelope used by the /api/v1 endpoints.
type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

// SuggestResponse is the body of GET /suggest.
type SuggestResponse struct {
	Suggestions []models.AirportRecord `json:"suggestions"`
	DidYouMean  []string               `json:"did_you_mean,omitempty"`
}

// CoordinatesResponse is the body of GET /get-coordinates.
type CoordinatesResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Geohash   string  `json:"geohash"`
}

// ErrorResponse is the error body of the public lookup endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RegenerationResponse reports a finished regeneration run.
type RegenerationResponse struct {
	RunID            string        `json:"run_id"`
	Records          int           `json:"records"`
	DatasetPath      string        `json:"dataset_path"`
	BackupPath       string        `json:"backup_path,omitempty"`
	BytesWritten     int64         `json:"bytes_written"`
	CountrySource    string        `json:"country_source"`
	MirroredRecords  int64         `json:"mirrored_records,omitempty"`
	Warnings         []string      `json:"warnings,omitempty"`
	Duration         time.Duration `json:"-"`
	DurationReadable string        `json:"duration"`
}

type ServiceStatus struct {
	Status  string `json:"status"`
	Details string `json:"details"`
}

type HealthCheckResponse struct {
	Status   string                   `json:"status"`
	Services map[string]ServiceStatus `json:"services"`
	UpSince  time.Time                `json:"up_since"`
	Uptime   string                   `json:"uptime"`
}
