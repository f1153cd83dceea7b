package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"flight-footprint/atlas/internal/common"
	"flight-footprint/atlas/internal/constants"
	"flight-footprint/atlas/internal/services"
)

const defaultMirrorListLimit = 50

// HasMirror reports whether a SQL mirror is configured.
func (h *Handlers) HasMirror() bool {
	return h.deps.Services.Mirror != nil
}

// MirrorListHandler handles GET /api/v1/mirror/airports?limit=
func (h *Handlers) MirrorListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		limit := defaultMirrorListLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 || parsed > services.MaxMirrorListLimit {
				respondWithError(w, http.StatusBadRequest, constants.MsgInvalidLimit)
				return
			}
			limit = parsed
		}

		records, err := h.deps.Services.Mirror.List(r.Context(), limit)
		if err != nil {
			respondLookupError(w, r, err)
			return
		}
		common.RespondSuccess(w, initTime, "Mirrored airports", records)
	}
}

// MirrorAirportHandler handles GET /api/v1/mirror/airports/{iata}
func (h *Handlers) MirrorAirportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		rec, err := h.deps.Services.Mirror.Airport(r.Context(), chi.URLParam(r, "iata"))
		if err != nil {
			respondLookupError(w, r, err)
			return
		}
		common.RespondSuccess(w, initTime, "Airport found", rec)
	}
}
