package api

import (
	"errors"
	"net/http"

	"flight-footprint/atlas/internal/airports"
	"flight-footprint/atlas/internal/common"
	"flight-footprint/atlas/internal/constants"
	"flight-footprint/atlas/internal/dataset"
	"flight-footprint/atlas/internal/logging"
	"flight-footprint/atlas/internal/models/dtos"
)

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	common.WriteJSON(w, statusCode, dtos.ErrorResponse{Error: message})
}

// respondLookupError maps lookup failures onto the public error body.
func respondLookupError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, airports.ErrNotFound):
		respondWithError(w, http.StatusNotFound, constants.MsgAirportNotFound)
	case errors.Is(err, airports.ErrInvalidPassengers):
		respondWithError(w, http.StatusBadRequest, constants.MsgInvalidPassengers)
	case errors.Is(err, dataset.ErrUnavailable):
		logging.Error("Dataset unavailable", "path", r.URL.Path, "error", err)
		respondWithError(w, http.StatusServiceUnavailable, constants.MsgDatasetUnavailable)
	default:
		logging.Error("Lookup failed", "path", r.URL.Path, "error", err)
		respondWithError(w, http.StatusInternalServerError, err.Error())
	}
}
