package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"carpool-service/internal/httputil"
)

// Handler exposes the authentication HTTP endpoints.
type Handler struct {
	svc *Service
	log *zap.SugaredLogger
}

// NewHandler wires a handler to the auth service.
func NewHandler(svc *Service, log *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register adds the auth routes to the root router; all are public.
func (h *Handler) Register(r chi.Router) {
	r.Post("/login", h.Login)
	r.Post("/forgot-password", h.ForgotPassword)
	r.Post("/reset-password", h.ResetPassword)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Respond(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}
	resp, err := h.svc.Login(r.Context(), req)
	if err != nil {
		httputil.Error(w, h.log, err)
		return
	}
	httputil.Respond(w, http.StatusOK, resp)
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Respond(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}
	if err := h.svc.RequestPasswordReset(r.Context(), req.Email); err != nil {
		httputil.Error(w, h.log, err)
		return
	}
	httputil.Respond(w, http.StatusOK, map[string]string{
		"message": "if the email exists, a reset code has been sent",
	})
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Respond(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}
	if err := h.svc.ResetPassword(r.Context(), req); err != nil {
		httputil.Error(w, h.log, err)
		return
	}
	httputil.Respond(w, http.StatusOK, map[string]string{"message": "password changed successfully"})
}
