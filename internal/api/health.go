package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"flight-footprint/atlas/internal/common"
	"flight-footprint/atlas/internal/db"
	"flight-footprint/atlas/internal/models/dtos"
)

const healthPingTimeout = 2 * time.Second

// HealthCheckHandler handles GET /healthCheck
func (h *Handlers) HealthCheckHandler(upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services := make(map[string]dtos.ServiceStatus)

		if records, version, err := h.deps.Services.Lookup.DatasetStatus(); err != nil {
			services["dataset"] = dtos.ServiceStatus{Status: "down", Details: err.Error()}
		} else {
			services["dataset"] = dtos.ServiceStatus{
				Status:  "ok",
				Details: fmt.Sprintf("%d records (version %s)", records, version),
			}
		}

		if h.deps.DB != nil {
			status := dtos.ServiceStatus{Status: "ok", Details: "Database Connected"}
			if err := db.Ping(h.deps.DB); err != nil {
				status = dtos.ServiceStatus{Status: "down", Details: err.Error()}
			}
			services["database"] = status
		}

		if h.deps.Services.Mirror != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
			status := dtos.ServiceStatus{Status: "ok"}
			if count, err := h.deps.Services.Mirror.Count(ctx); err != nil {
				status = dtos.ServiceStatus{Status: "down", Details: err.Error()}
			} else {
				status.Details = fmt.Sprintf("%d records mirrored", count)
			}
			cancel()
			services["mirror"] = status
		}

		if h.deps.Redis != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
			status := dtos.ServiceStatus{Status: "ok", Details: "Redis Connected"}
			if err := h.deps.Redis.Ping(ctx); err != nil {
				status = dtos.ServiceStatus{Status: "down", Details: err.Error()}
			}
			cancel()
			services["redis"] = status
		}

		overallStatus := "ok"
		code := http.StatusOK
		for _, svc := range services {
			if svc.Status != "ok" {
				overallStatus = "down"
				code = http.StatusServiceUnavailable
				break
			}
		}

		resp := dtos.HealthCheckResponse{
			Services: services,
			Status:   overallStatus,
			UpSince:  upSince,
			Uptime:   time.Since(upSince).Round(time.Second).String(),
		}
		common.WriteJSON(w, code, resp)
	}
}
