package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vet-records/internal/ports/auth"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScheme(t *testing.T) *Scheme {
	t.Helper()
	s, err := New(Config{HashKey: []byte("0123456789abcdef0123456789abcdef"), TTL: time.Hour})
	require.NoError(t, err)
	return s
}

// login simula el handler de login y devuelve la cookie emitida.
func login(t *testing.T, s *Scheme, userID int64) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	tok, err := s.Establish(context.Background(), rec, userID)
	require.NoError(t, err)
	assert.Empty(t, tok)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)
	return cookies[0]
}

func TestEstablishAuthenticateRevoke(t *testing.T) {
	s := newScheme(t)
	cookie := login(t, s, 9)

	req := httptest.NewRequest("GET", "/user", nil)
	req.AddCookie(cookie)

	claims, err := s.Authenticate(req)
	require.NoError(t, err)
	assert.Equal(t, int64(9), claims.UserID)

	rec := httptest.NewRecorder()
	require.NoError(t, s.Revoke(rec, req))
	assert.Equal(t, -1, rec.Result().Cookies()[0].MaxAge)

	_, err = s.Authenticate(req)
	assert.ErrorIs(t, err, errors.Unauthorized)
}

func TestAuthenticate_NoCookie(t *testing.T) {
	_, err := newScheme(t).Authenticate(httptest.NewRequest("GET", "/user", nil))
	assert.ErrorIs(t, err, auth.ErrNoCredentials)
}

func TestAuthenticate_TamperedCookie(t *testing.T) {
	s := newScheme(t)
	cookie := login(t, s, 1)
	cookie.Value = cookie.Value[:len(cookie.Value)-2] + "xx"

	req := httptest.NewRequest("GET", "/user", nil)
	req.AddCookie(cookie)
	_, err := s.Authenticate(req)
	assert.ErrorIs(t, err, errors.Unauthorized)
}

func TestAuthenticate_Expired(t *testing.T) {
	s := newScheme(t)
	start := time.Now()
	s.now = func() time.Time { return start }
	cookie := login(t, s, 1)

	s.now = func() time.Time { return start.Add(2 * time.Hour) }
	req := httptest.NewRequest("GET", "/user", nil)
	req.AddCookie(cookie)
	_, err := s.Authenticate(req)
	assert.ErrorIs(t, err, errors.Unauthorized)
}
