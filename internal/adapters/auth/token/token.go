// Package token implementa el esquema de identidad con JWT bearer (HS256).
// El subject del token es el id del usuario.
package token

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"vet-records/internal/platform/apperr"
	"vet-records/internal/ports/auth"

	"github.com/google/uuid"
	"github.com/juju/errors"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const SchemeName = "token"

var (
	ErrInvalidToken   = apperr.Unauthorized("Invalid or expired token")
	ErrMissingSubject = apperr.Invalid("Token is missing the subject claim")
	ErrBadSubject     = apperr.Invalid("Invalid token subject")
)

type Config struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

type Scheme struct {
	key    []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func New(cfg Config) (*Scheme, error) {
	if len(cfg.Secret) < 16 {
		return nil, errors.NotValidf("jwt secret shorter than 16 bytes")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Scheme{
		key:    cfg.Secret,
		issuer: strings.TrimSpace(cfg.Issuer),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (s *Scheme) Name() string { return SchemeName }

// Issue firma un token para userID.
func (s *Scheme) Issue(userID int64) (string, error) {
	now := s.now()
	tok, err := jwt.NewBuilder().
		Subject(strconv.FormatInt(userID, 10)).
		JwtID(uuid.NewString()).
		Issuer(s.issuer).
		IssuedAt(now).
		Expiration(now.Add(s.ttl)).
		Build()
	if err != nil {
		return "", errors.Annotate(err, "build token")
	}
	return s.sign(tok)
}

func (s *Scheme) sign(tok jwt.Token) (string, error) {
	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, s.key))
	if err != nil {
		return "", errors.Annotate(err, "sign token")
	}
	return string(signed), nil
}

// Verify valida firma, issuer y vencimiento, y extrae el subject.
func (s *Scheme) Verify(raw string) (auth.Claims, error) {
	tok, err := jwt.Parse([]byte(raw),
		jwt.WithKey(jwa.HS256, s.key),
		jwt.WithValidate(true),
		jwt.WithIssuer(s.issuer),
		jwt.WithClock(jwt.ClockFunc(s.now)),
	)
	if err != nil {
		return auth.Claims{}, ErrInvalidToken
	}

	sub := strings.TrimSpace(tok.Subject())
	if sub == "" {
		return auth.Claims{}, ErrMissingSubject
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || id <= 0 {
		return auth.Claims{}, ErrBadSubject
	}
	return auth.Claims{UserID: id, Scheme: SchemeName}, nil
}

func (s *Scheme) Authenticate(r *http.Request) (auth.Claims, error) {
	raw := BearerToken(r.Header.Get("Authorization"))
	if raw == "" {
		return auth.Claims{}, auth.ErrNoCredentials
	}
	return s.Verify(raw)
}

func (s *Scheme) Establish(_ context.Context, _ http.ResponseWriter, userID int64) (string, error) {
	return s.Issue(userID)
}

// Revoke no hace nada: los tokens son stateless y vencen solos.
func (s *Scheme) Revoke(http.ResponseWriter, *http.Request) error {
	return nil
}

func BearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
