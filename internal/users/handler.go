package users

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"carpool-service/internal/apperrors"
	"carpool-service/internal/httputil"
	"carpool-service/pkg/jwt"
)

// MaxUploadBytes caps profile picture uploads at 5 MiB.
const MaxUploadBytes = 5 << 20

var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Handler exposes user HTTP endpoints.
type Handler struct {
	svc *Service
	log *zap.SugaredLogger
}

// NewHandler wires a handler to the user service.
func NewHandler(svc *Service, log *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Routes returns a chi.Router with all user routes.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(jwt.RequireAuth)

	r.Get("/me", h.Me)
	r.Post("/me/picture", h.UploadPicture)

	return r
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims := jwt.GetClaims(r.Context())
	u, err := h.svc.GetByID(r.Context(), claims.UserID)
	if err != nil {
		httputil.Error(w, h.log, err)
		return
	}
	httputil.Respond(w, http.StatusOK, u)
}

func (h *Handler) UploadPicture(w http.ResponseWriter, r *http.Request) {
	claims := jwt.GetClaims(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httputil.Error(w, h.log, apperrors.ErrFileTooLarge)
			return
		}
		httputil.Error(w, h.log, apperrors.ErrNoFile)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedMimeTypes[contentType] {
		httputil.Error(w, h.log, apperrors.ErrUnsupportedFileType)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httputil.Error(w, h.log, apperrors.ErrFileTooLarge)
			return
		}
		httputil.Error(w, h.log, err)
		return
	}

	if err := h.svc.UploadProfilePicture(r.Context(), claims.UserID, header.Filename, contentType, data); err != nil {
		httputil.Error(w, h.log, err)
		return
	}

	httputil.Respond(w, http.StatusOK, map[string]string{"message": "profile picture updated successfully"})
}
