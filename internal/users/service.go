package users

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"carpool-service/internal/apperrors"
	"carpool-service/pkg/images"
)

// ProfilePictureSize is the square target the uploaded image is resized to.
const ProfilePictureSize = 512

// Store is the persistence port for user records.
type Store interface {
	ByID(ctx context.Context, id string) (*User, error)
	ProfilePicture(ctx context.Context, id string) (string, error)
	SetProfilePicture(ctx context.Context, id, key string) error
}

// ObjectStore is the binary object storage port.
type ObjectStore interface {
	Put(ctx context.Context, bucket, key string, data []byte, contentType string) error
	Delete(ctx context.Context, bucket, key string) error
}

// Service contains user profile business logic.
type Service struct {
	store   Store
	objects ObjectStore
	bucket  string
	log     *zap.SugaredLogger
}

// NewService creates a user service.
func NewService(store Store, objects ObjectStore, bucket string, log *zap.SugaredLogger) *Service {
	return &Service{store: store, objects: objects, bucket: bucket, log: log}
}

// GetByID fetches a user profile.
func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.store.ByID(ctx, id)
}

// UploadProfilePicture resizes the image, stores it under a fresh key,
// removes the previous object if one exists, and persists the new key on the
// user record. The old-object delete is best-effort; it is not transactional
// with the upload.
func (s *Service) UploadProfilePicture(ctx context.Context, userID, filename, contentType string, data []byte) error {
	resized, err := images.ResizeSquare(data, ProfilePictureSize, contentType)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidImage, err)
	}

	key := uuid.New().String() + filename
	if err := s.objects.Put(ctx, s.bucket, key, resized, contentType); err != nil {
		return err
	}

	old, err := s.store.ProfilePicture(ctx, userID)
	if err != nil {
		return err
	}
	if old != "" {
		if err := s.objects.Delete(ctx, s.bucket, old); err != nil {
			s.log.Warnw("failed to delete old profile picture", "key", old, "error", err)
		}
	}

	return s.store.SetProfilePicture(ctx, userID, key)
}
