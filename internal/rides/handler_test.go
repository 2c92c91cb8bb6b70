package rides

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"carpool-service/pkg/jwt"
)

func init() {
	if err := jwt.Init("test-secret"); err != nil {
		panic(err)
	}
}

func newTestRouter(store *fakeStore) http.Handler {
	svc, _ := newTestService(store)
	r := chi.NewRouter()
	r.Use(jwt.OptionalAuth)
	r.Mount("/rides", NewHandler(svc, zap.NewNop().Sugar()).Routes())
	return r
}

func endRequest(t *testing.T, userID string) *http.Request {
	t.Helper()
	token, err := jwt.Generate(userID, userID+"@x.com", "Test", "Driver")
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/rides/ride1/end", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestEndRideEndpoint(t *testing.T) {
	store := &fakeStore{rides: map[string]*Ride{"ride1": inProgressRide()}}
	router := newTestRouter(store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, endRequest(t, "d1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var ride Ride
	if err := json.NewDecoder(rec.Body).Decode(&ride); err != nil {
		t.Fatal(err)
	}
	if ride.Status != StatusCompleted || ride.EndTime == nil {
		t.Errorf("expected the completed ride payload, got %+v", ride)
	}
}

func TestEndRideEndpointNotOwner(t *testing.T) {
	store := &fakeStore{rides: map[string]*Ride{"ride1": inProgressRide()}}
	router := newTestRouter(store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, endRequest(t, "intruder"))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestEndRideEndpointWrongStatus(t *testing.T) {
	ride := inProgressRide()
	ride.Status = StatusCompleted
	store := &fakeStore{rides: map[string]*Ride{"ride1": ride}}
	router := newTestRouter(store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, endRequest(t, "d1"))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}
