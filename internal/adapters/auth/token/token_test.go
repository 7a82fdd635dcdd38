package token

import (
	"net/http/httptest"
	"testing"
	"time"

	"vet-records/internal/ports/auth"

	"github.com/juju/errors"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("0123456789abcdef-test")

func newScheme(t *testing.T, now time.Time) *Scheme {
	t.Helper()
	s, err := New(Config{Secret: secret, Issuer: "vet-records", TTL: time.Hour})
	require.NoError(t, err)
	s.now = func() time.Time { return now }
	return s
}

func TestIssueAndAuthenticate(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	s := newScheme(t, now)

	raw, err := s.Issue(42)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/user", nil)
	req.Header.Set("Authorization", "Bearer "+raw)

	claims, err := s.Authenticate(req)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, SchemeName, claims.Scheme)
}

func TestAuthenticate_NoHeader(t *testing.T) {
	s := newScheme(t, time.Now())
	_, err := s.Authenticate(httptest.NewRequest("GET", "/user", nil))
	assert.ErrorIs(t, err, auth.ErrNoCredentials)
}

func TestVerify_Expired(t *testing.T) {
	issuedAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	s := newScheme(t, issuedAt)
	raw, err := s.Issue(1)
	require.NoError(t, err)

	s.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	_, err = s.Verify(raw)
	assert.ErrorIs(t, err, errors.Unauthorized)
}

func TestVerify_WrongKey(t *testing.T) {
	now := time.Now()
	other, err := New(Config{Secret: []byte("another-secret-of-16b"), Issuer: "vet-records"})
	require.NoError(t, err)
	raw, err := other.Issue(1)
	require.NoError(t, err)

	_, err = newScheme(t, now).Verify(raw)
	assert.ErrorIs(t, err, errors.Unauthorized)
}

func TestVerify_MalformedSubject(t *testing.T) {
	now := time.Now()
	s := newScheme(t, now)

	build := func(sub string) string {
		b := jwt.NewBuilder().Issuer("vet-records").IssuedAt(now).Expiration(now.Add(time.Minute))
		if sub != "" {
			b = b.Subject(sub)
		}
		tok, err := b.Build()
		require.NoError(t, err)
		raw, err := s.sign(tok)
		require.NoError(t, err)
		return raw
	}

	_, err := s.Verify(build(""))
	assert.ErrorIs(t, err, errors.NotValid)
	assert.Equal(t, ErrMissingSubject, err)

	_, err = s.Verify(build("abc"))
	assert.ErrorIs(t, err, errors.NotValid)
	assert.Equal(t, ErrBadSubject, err)
}

func TestNew_RejectsShortSecret(t *testing.T) {
	_, err := New(Config{Secret: []byte("short")})
	assert.Error(t, err)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "abc", BearerToken("bearer   abc "))
	assert.Equal(t, "", BearerToken("Basic abc"))
	assert.Equal(t, "", BearerToken("abc"))
	assert.Equal(t, "", BearerToken(""))
}
