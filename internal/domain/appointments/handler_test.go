package appointments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vet-records/internal/platform/apperr"
	"vet-records/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	byID   map[int64]Appointment
	nextID int64
}

func (r *testRepo) Create(_ context.Context, a Appointment) (Appointment, error) {
	r.nextID++
	a.ID = r.nextID
	r.byID[a.ID] = a
	return a, nil
}

func (r *testRepo) GetByID(_ context.Context, id int64) (Appointment, error) {
	a, ok := r.byID[id]
	if !ok {
		return Appointment{}, ErrNotFound
	}
	a.PetName, a.VetName = "Rex", "Dr. Vega"
	return a, nil
}

func (r *testRepo) ListByUser(_ context.Context, userID int64) ([]Appointment, error) {
	out := make([]Appointment, 0)
	for id := int64(1); id <= r.nextID; id++ {
		if a, err := r.GetByID(context.Background(), id); err == nil && a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *testRepo) Update(_ context.Context, a Appointment) error {
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Delete(_ context.Context, id int64) error {
	delete(r.byID, id)
	return nil
}

type knownUsers map[int64]bool

func (k knownUsers) Exists(_ context.Context, id int64) error {
	if !k[id] {
		return apperr.NotFound("User not found")
	}
	return nil
}

type stubLookup struct{ known map[int64]bool }

func (s stubLookup) Exists(_ context.Context, id int64) error {
	if !s.known[id] {
		return apperr.NotFound("Vet not found")
	}
	return nil
}

func (s stubLookup) CheckOwnedBy(_ context.Context, petID, userID int64) error {
	if petID != 10 {
		return apperr.NotFound("Pet not found")
	}
	if userID != 1 {
		return apperr.Invalid("Pet does not belong to user")
	}
	return nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	repo := &testRepo{byID: map[int64]Appointment{}}
	svc := NewService(repo, knownUsers{1: true}, stubLookup{}, stubLookup{known: map[int64]bool{3: true}})
	svc.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }

	r := chi.NewRouter()
	RegisterRoutes(r, svc, logger.NewDiscard())
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestCreateAppointment(t *testing.T) {
	ts := newTestServer(t)
	base := `"user_id":1,"pet_id":10,"vet_id":3,"reason":"Checkup","date":"2024-05-01","location":"Main St"`

	cases := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"hour out of range", `{` + base + `,"time":"25:00"}`, http.StatusBadRequest, "Invalid time format."},
		{"seconds not allowed", `{` + base + `,"time":"10:30:00"}`, http.StatusBadRequest, "Invalid time format."},
		{"bad date", `{"user_id":1,"pet_id":10,"vet_id":3,"reason":"x","date":"05/01/2024","time":"10:30","location":"y"}`, http.StatusBadRequest, "Invalid date format."},
		{"missing fields", `{"user_id":1,"pet_id":10}`, http.StatusBadRequest, "Missing required fields: vet_id, reason, date, time, location"},
		{"unknown vet", `{"user_id":1,"pet_id":10,"vet_id":9,"reason":"x","date":"2024-05-01","time":"10:30","location":"y"}`, http.StatusNotFound, "Vet not found"},
		{"unknown pet", `{"user_id":1,"pet_id":11,"vet_id":3,"reason":"x","date":"2024-05-01","time":"10:30","location":"y"}`, http.StatusNotFound, "Pet not found"},
		{"unknown user", `{"user_id":5,"pet_id":10,"vet_id":3,"reason":"x","date":"2024-05-01","time":"10:30","location":"y"}`, http.StatusNotFound, "User not found"},
		{"anonymous without user", `{"pet_id":10,"vet_id":3,"reason":"x","date":"2024-05-01","time":"10:30","location":"y"}`, http.StatusBadRequest, "user_id is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, body := post(t, ts.URL+"/appointments", tc.body)
			assert.Equal(t, tc.wantStatus, st)
			assert.Equal(t, tc.wantError, body["error"])
		})
	}

	st, body := post(t, ts.URL+"/appointments", `{`+base+`,"time":"09:15","notes":"fasting"}`)
	require.Equal(t, http.StatusCreated, st, body)
	assert.Equal(t, "09:15", body["time"])
	assert.Equal(t, "2024-05-01", body["date"])
	assert.Equal(t, "Rex", body["pet_name"])
	assert.Equal(t, "Dr. Vega", body["vet_name"])
	assert.Equal(t, "fasting", body["notes"])
}

func TestGetAppointment_NonNumericID(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/appointments/abc")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
