package httputil

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"carpool-service/internal/apperrors"
)

// Respond writes a JSON body with the given status.
func Respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Error writes exactly one error response for the request. Domain validation
// errors map to their 4xx status and message; everything else is logged and
// collapsed to a generic 500 with no internal detail.
func Error(w http.ResponseWriter, log *zap.SugaredLogger, err error) {
	status, msg := apperrors.Translate(err)
	if status == http.StatusInternalServerError {
		if log != nil {
			log.Errorw("unexpected error", "error", err)
		}
		msg = "internal server error, try again later"
	}
	Respond(w, status, map[string]string{"error": msg})
}
