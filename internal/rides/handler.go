package rides

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"carpool-service/internal/httputil"
	"carpool-service/pkg/jwt"
)

// Handler exposes ride HTTP endpoints.
type Handler struct {
	svc *Service
	log *zap.SugaredLogger
}

// NewHandler wires a handler to the ride service.
func NewHandler(svc *Service, log *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Routes returns a chi.Router with all ride routes.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{id}", h.GetByID)

	r.Group(func(r chi.Router) {
		r.Use(jwt.RequireAuth)
		r.Post("/{id}/start", h.Start)
		r.Post("/{id}/end", h.End)
	})

	return r
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	ride, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, h.log, err)
		return
	}
	httputil.Respond(w, http.StatusOK, ride)
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	claims := jwt.GetClaims(r.Context())
	ride, err := h.svc.Start(r.Context(), chi.URLParam(r, "id"), claims.UserID)
	if err != nil {
		httputil.Error(w, h.log, err)
		return
	}
	httputil.Respond(w, http.StatusOK, ride)
}

func (h *Handler) End(w http.ResponseWriter, r *http.Request) {
	claims := jwt.GetClaims(r.Context())
	ride, err := h.svc.End(r.Context(), chi.URLParam(r, "id"), claims.UserID)
	if err != nil {
		httputil.Error(w, h.log, err)
		return
	}
	httputil.Respond(w, http.StatusOK, ride)
}
