package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"flight-footprint/atlas/internal/common"
	"flight-footprint/atlas/internal/constants"
)

// SuggestHandler handles GET /suggest?q=
// A missing q behaves like an empty query.
func (h *Handlers) SuggestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := h.deps.Services.Lookup.SuggestJSON(r.URL.Query().Get("q"))
		if err != nil {
			respondLookupError(w, r, err)
			return
		}
		common.WriteRawJSON(w, http.StatusOK, body)
	}
}

// CoordinatesHandler handles GET /get-coordinates?q=<exact name>
func (h *Handlers) CoordinatesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if !query.Has("q") {
			respondWithError(w, http.StatusBadRequest, constants.MsgMissingQuery)
			return
		}

		resp, err := h.deps.Services.Lookup.Coordinates(query.Get("q"))
		if err != nil {
			respondLookupError(w, r, err)
			return
		}
		common.WriteJSON(w, http.StatusOK, resp)
	}
}

// AirportHandler handles GET /api/v1/airports/{iata}
func (h *Handlers) AirportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		rec, err := h.deps.Services.Lookup.Airport(chi.URLParam(r, "iata"))
		if err != nil {
			respondLookupError(w, r, err)
			return
		}
		common.RespondSuccess(w, initTime, "Airport found", rec)
	}
}

// EmissionsHandler handles GET /api/v1/emissions?origin=&destination=&round_trip=&passengers=
func (h *Handlers) EmissionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		query := r.URL.Query()

		origin := strings.TrimSpace(query.Get("origin"))
		destination := strings.TrimSpace(query.Get("destination"))
		if origin == "" || destination == "" {
			respondWithError(w, http.StatusBadRequest, constants.MsgMissingEndpoints)
			return
		}

		roundTrip := false
		if raw := query.Get("round_trip"); raw != "" {
			parsed, err := strconv.ParseBool(raw)
			if err != nil {
				respondWithError(w, http.StatusBadRequest, constants.MsgInvalidRoundTrip)
				return
			}
			roundTrip = parsed
		}

		passengers := 1
		if raw := query.Get("passengers"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				respondWithError(w, http.StatusBadRequest, constants.MsgInvalidPassengers)
				return
			}
			passengers = parsed
		}

		est, err := h.deps.Services.Lookup.Emissions(origin, destination, roundTrip, passengers)
		if err != nil {
			respondLookupError(w, r, err)
			return
		}
		common.RespondSuccess(w, initTime, "Emissions estimated", est)
	}
}
