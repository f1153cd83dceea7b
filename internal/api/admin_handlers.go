package api

import (
	"net/http"
	"time"

	"flight-footprint/atlas/internal/auth"
	"flight-footprint/atlas/internal/common"
	"flight-footprint/atlas/internal/constants"
	"flight-footprint/atlas/internal/logging"
	"flight-footprint/atlas/internal/services"
)

// RegenerateHandler handles POST /api/v1/admin/regenerate
// Concurrent calls share a single run.
func (h *Handlers) RegenerateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetAdminClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, constants.MsgUnauthorized, http.StatusUnauthorized)
			return
		}

		logging.Info("Regeneration requested", "subject", claims.Subject, "token_id", claims.ID)

		result, shared, err := h.deps.Services.Regeneration.Trigger(r.Context(), services.RegenerationOptions{
			OutputPath: h.deps.DatasetPath,
			CSVPath:    h.deps.CSVPath,
		})
		if err != nil {
			common.RespondError(w, initTime, err, constants.MsgRegenerationFailed+": "+err.Error(), http.StatusBadGateway)
			return
		}

		message := "Dataset regenerated"
		if shared {
			message = "Dataset regenerated by a concurrent request"
		}
		if len(result.Warnings) > 0 {
			message += " with warnings"
		}
		common.RespondSuccess(w, initTime, message, result.Response())
	}
}
