package api

import (
	"context"

	"gorm.io/gorm"

	"flight-footprint/atlas/internal/services"
)

// Pinger is implemented by optional backends the health check reports on.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Services struct {
	Lookup       *services.LookupService
	Regeneration *services.RegenerationService

	// Mirror is nil when no SQL mirror is configured.
	Mirror *services.MirrorService
}

type Dependencies struct {
	Services    *Services
	DatasetPath string
	CSVPath     string

	// Optional backends; nil when not configured.
	DB    *gorm.DB
	Redis Pinger
}

type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		deps: deps,
	}
}
