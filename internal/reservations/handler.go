package reservations

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"carpool-service/internal/httputil"
	"carpool-service/pkg/jwt"
)

// Handler exposes reservation HTTP endpoints.
type Handler struct {
	svc *Service
	log *zap.SugaredLogger
}

// NewHandler wires a handler to the reservation service.
func NewHandler(svc *Service, log *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Routes returns a chi.Router with all reservation routes. Cancel is
// registered without RequireAuth on purpose: the service reports the missing
// session itself so the client gets the domain error body.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/{id}/cancel", h.Cancel)
	r.Delete("/{id}/cancel", h.Cancel)

	r.Group(func(r chi.Router) {
		r.Use(jwt.RequireAuth)
		r.Get("/{id}", h.GetByID)
	})

	return r
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	claims := jwt.GetClaims(r.Context())
	res, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"), claims.UserID)
	if err != nil {
		httputil.Error(w, h.log, err)
		return
	}
	httputil.Respond(w, http.StatusOK, res)
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	passengerID := ""
	if claims := jwt.GetClaims(r.Context()); claims != nil {
		passengerID = claims.UserID
	}

	if _, err := h.svc.Cancel(r.Context(), chi.URLParam(r, "id"), passengerID); err != nil {
		httputil.Error(w, h.log, err)
		return
	}
	httputil.Respond(w, http.StatusOK, map[string]string{"message": "reservation cancelled successfully"})
}
