package middleware

import (
	"net/http"
	"strings"
	"time"

	"flight-footprint/atlas/internal/auth"
	"flight-footprint/atlas/internal/common"
	"flight-footprint/atlas/internal/constants"
	reqctx "flight-footprint/atlas/internal/context"
	"flight-footprint/atlas/internal/logging"
)

// AdminAuthMiddleware requires a valid admin bearer token.
func AdminAuthMiddleware(signer *auth.TokenSigner) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				common.RespondError(w, start, nil, constants.MsgUnauthorized, http.StatusUnauthorized)
				return
			}

			claims, err := signer.Verify(strings.TrimSpace(token))
			if err != nil {
				logging.Warn("Rejected admin token",
					"request_id", reqctx.GetRequestID(r.Context()),
					"remote_ip", clientIP(r),
					"error", err,
				)
				common.RespondError(w, start, nil, constants.MsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.SetAdminClaims(r.Context(), claims)))
		})
	}
}
