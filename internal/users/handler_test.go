package users

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"carpool-service/internal/apperrors"
	"carpool-service/pkg/jwt"
)

func init() {
	if err := jwt.Init("test-secret"); err != nil {
		panic(err)
	}
}

type fakeStore struct {
	users    map[string]*User
	pictures map[string]string
}

func (f *fakeStore) ByID(_ context.Context, id string) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) ProfilePicture(_ context.Context, id string) (string, error) {
	if _, ok := f.users[id]; !ok {
		return "", apperrors.ErrUserNotFound
	}
	return f.pictures[id], nil
}

func (f *fakeStore) SetProfilePicture(_ context.Context, id, key string) error {
	f.pictures[id] = key
	return nil
}

type putCall struct {
	bucket, key, contentType string
	data                     []byte
}

type fakeObjects struct {
	puts      []putCall
	deletes   []string
	deleteErr error
}

func (f *fakeObjects) Put(_ context.Context, bucket, key string, data []byte, contentType string) error {
	f.puts = append(f.puts, putCall{bucket: bucket, key: key, contentType: contentType, data: data})
	return nil
}

func (f *fakeObjects) Delete(_ context.Context, _, key string) error {
	f.deletes = append(f.deletes, key)
	return f.deleteErr
}

func newTestRouter(store *fakeStore, objects *fakeObjects) http.Handler {
	svc := NewService(store, objects, "profile-pictures", zap.NewNop().Sugar())
	r := chi.NewRouter()
	r.Use(jwt.OptionalAuth)
	r.Mount("/users", NewHandler(svc, zap.NewNop().Sugar()).Routes())
	return r
}

func newTestStore() *fakeStore {
	return &fakeStore{
		users: map[string]*User{
			"u1": {ID: "u1", Email: "a@x.com", Name: "Ana", LastName: "Silva", Active: true},
		},
		pictures: map[string]string{},
	}
}

func authToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.Generate("u1", "a@x.com", "Ana", "Silva")
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func multipartFile(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func uploadRequest(t *testing.T, body *bytes.Buffer, contentType, token string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/users/me/picture", body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestUploadRejectsGifBeforeAnyExternalCall(t *testing.T) {
	store := newTestStore()
	objects := &fakeObjects{}
	router := newTestRouter(store, objects)

	body, contentType := multipartFile(t, "cat.gif", "image/gif", []byte("GIF89a"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, body, contentType, authToken(t)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(objects.puts) != 0 || len(objects.deletes) != 0 {
		t.Error("storage must not be touched for a rejected mime type")
	}
	if len(store.pictures) != 0 {
		t.Error("user record must not be touched for a rejected mime type")
	}
}

func TestUploadWithoutFile(t *testing.T) {
	router := newTestRouter(newTestStore(), &fakeObjects{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("note", "no file here")
	mw.Close()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, &buf, mw.FormDataContentType(), authToken(t)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "no file uploaded") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestUploadWithoutToken(t *testing.T) {
	router := newTestRouter(newTestStore(), &fakeObjects{})

	body, contentType := multipartFile(t, "me.png", "image/png", pngBytes(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, body, contentType, ""))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestUploadStoresResizedPicture(t *testing.T) {
	store := newTestStore()
	objects := &fakeObjects{}
	router := newTestRouter(store, objects)

	body, contentType := multipartFile(t, "me.png", "image/png", pngBytes(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, body, contentType, authToken(t)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(objects.puts) != 1 {
		t.Fatalf("expected 1 put, got %d", len(objects.puts))
	}

	put := objects.puts[0]
	if put.contentType != "image/png" {
		t.Errorf("expected image/png content type, got %s", put.contentType)
	}
	if !strings.HasSuffix(put.key, "me.png") {
		t.Errorf("object key should keep the original filename, got %q", put.key)
	}
	if put.key == "me.png" {
		t.Error("object key must carry a random prefix")
	}

	img, _, err := image.Decode(bytes.NewReader(put.data))
	if err != nil {
		t.Fatalf("stored object is not a decodable image: %v", err)
	}
	if b := img.Bounds(); b.Dx() != ProfilePictureSize || b.Dy() != ProfilePictureSize {
		t.Errorf("expected %dx%d, got %dx%d", ProfilePictureSize, ProfilePictureSize, b.Dx(), b.Dy())
	}

	if store.pictures["u1"] != put.key {
		t.Errorf("user record should hold the new key, got %q", store.pictures["u1"])
	}
	if len(objects.deletes) != 0 {
		t.Error("nothing to delete when no previous picture exists")
	}
}

func TestUploadReplacesOldPicture(t *testing.T) {
	store := newTestStore()
	store.pictures["u1"] = "old-key"
	objects := &fakeObjects{}
	router := newTestRouter(store, objects)

	body, contentType := multipartFile(t, "me.png", "image/png", pngBytes(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, body, contentType, authToken(t)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(objects.deletes) != 1 || objects.deletes[0] != "old-key" {
		t.Errorf("expected the old object to be deleted, got %v", objects.deletes)
	}
	if store.pictures["u1"] == "old-key" {
		t.Error("user record should point at the new key")
	}
}

func TestUploadSucceedsWhenOldDeleteFails(t *testing.T) {
	store := newTestStore()
	store.pictures["u1"] = "old-key"
	objects := &fakeObjects{deleteErr: errors.New("object store unreachable")}
	router := newTestRouter(store, objects)

	body, contentType := multipartFile(t, "me.png", "image/png", pngBytes(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, body, contentType, authToken(t)))

	if rec.Code != http.StatusOK {
		t.Fatalf("old-object delete failure must not fail the upload, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(objects.deletes) != 1 || objects.deletes[0] != "old-key" {
		t.Errorf("expected a delete attempt on the old object, got %v", objects.deletes)
	}
	if store.pictures["u1"] == "old-key" || store.pictures["u1"] == "" {
		t.Errorf("user record should hold the new key, got %q", store.pictures["u1"])
	}
}

func TestUploadUndecodableImage(t *testing.T) {
	store := newTestStore()
	objects := &fakeObjects{}
	router := newTestRouter(store, objects)

	body, contentType := multipartFile(t, "me.png", "image/png", []byte("not a png"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, body, contentType, authToken(t)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if len(objects.puts) != 0 {
		t.Error("storage must not be touched for an undecodable image")
	}
}
