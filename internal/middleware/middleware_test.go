package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"vet-records/internal/adapters/auth/debug"
	"vet-records/internal/ports/auth"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v int64) *int64 { return &v }

func TestResolveUserID(t *testing.T) {
	anon := context.Background()
	authed := WithClaims(context.Background(), auth.Claims{UserID: 5})

	_, err := ResolveUserID(anon, nil)
	assert.ErrorIs(t, err, errors.NotValid)

	id, err := ResolveUserID(anon, ptr(3))
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)

	id, err = ResolveUserID(authed, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)

	_, err = ResolveUserID(authed, ptr(3))
	assert.ErrorIs(t, err, errors.Forbidden)
}

func TestCheckOwner(t *testing.T) {
	assert.NoError(t, CheckOwner(context.Background(), 1))
	authed := WithClaims(context.Background(), auth.Claims{UserID: 5})
	assert.NoError(t, CheckOwner(authed, 5))
	assert.ErrorIs(t, CheckOwner(authed, 6), errors.Forbidden)
}

func TestAuthContext_AndRequireIdentity(t *testing.T) {
	var seen auth.Claims
	var seenErr error
	h := AuthContext(debug.New())(RequireIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetClaims(r.Context())
		seenErr = AuthError(r.Context())
		w.WriteHeader(http.StatusOK)
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/pets", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Authentication required"}`, rec.Body.String())

	req := httptest.NewRequest("GET", "/pets", nil)
	req.Header.Set(debug.HeaderName, "not-a-number")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest("GET", "/pets", nil)
	req.Header.Set(debug.HeaderName, "7")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), seen.UserID)
	assert.NoError(t, seenErr)
}

func TestAuthContext_KeepsRejectedCredentialError(t *testing.T) {
	var seenErr error
	h := AuthContext(debug.New())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenErr = AuthError(r.Context())
	}))

	req := httptest.NewRequest("GET", "/user", nil)
	req.Header.Set(debug.HeaderName, "x")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.ErrorIs(t, seenErr, errors.NotValid)
}

func TestCORS(t *testing.T) {
	h := CORS("http://localhost:3000/")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// preflight del origen permitido
	req := httptest.NewRequest(http.MethodOptions, "/pets", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	// otro origen: sin headers
	req = httptest.NewRequest(http.MethodGet, "/pets", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
