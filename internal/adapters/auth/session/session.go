// Package session implementa identidad por sesión del lado del servidor.
// La cookie solo lleva el id de sesión firmado; el usuario vive en el store.
package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"vet-records/internal/platform/apperr"
	"vet-records/internal/ports/auth"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/juju/errors"
)

const (
	SchemeName = "session"
	CookieName = "vetrecords_session"
)

var ErrInvalidSession = apperr.Unauthorized("Invalid or expired session")

type Config struct {
	HashKey []byte
	TTL     time.Duration

	// Secure marca la cookie solo-HTTPS.
	Secure bool
}

type entry struct {
	userID    int64
	expiresAt time.Time
}

type Scheme struct {
	codec  *securecookie.SecureCookie
	ttl    time.Duration
	secure bool
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]entry
}

func New(cfg Config) (*Scheme, error) {
	if len(cfg.HashKey) < 16 {
		return nil, errors.NotValidf("session hash key shorter than 16 bytes")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	codec := securecookie.New(cfg.HashKey, nil)
	codec.MaxAge(int(ttl.Seconds()))

	return &Scheme{
		codec:    codec,
		ttl:      ttl,
		secure:   cfg.Secure,
		now:      time.Now,
		sessions: make(map[string]entry),
	}, nil
}

func (s *Scheme) Name() string { return SchemeName }

func (s *Scheme) Establish(_ context.Context, w http.ResponseWriter, userID int64) (string, error) {
	sid := uuid.NewString()
	encoded, err := s.codec.Encode(CookieName, sid)
	if err != nil {
		return "", errors.Annotate(err, "encode session cookie")
	}

	now := s.now()
	s.mu.Lock()
	s.gcLocked(now)
	s.sessions[sid] = entry{userID: userID, expiresAt: now.Add(s.ttl)}
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return "", nil
}

func (s *Scheme) Authenticate(r *http.Request) (auth.Claims, error) {
	sid, err := s.sessionID(r)
	if err != nil {
		return auth.Claims{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[sid]
	if !ok {
		return auth.Claims{}, ErrInvalidSession
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.sessions, sid)
		return auth.Claims{}, ErrInvalidSession
	}
	return auth.Claims{UserID: e.userID, Scheme: SchemeName}, nil
}

// Revoke borra la sesión y expira la cookie. Sin cookie no hace nada.
func (s *Scheme) Revoke(w http.ResponseWriter, r *http.Request) error {
	sid, err := s.sessionID(r)
	if err == nil {
		s.mu.Lock()
		delete(s.sessions, sid)
		s.mu.Unlock()
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *Scheme) sessionID(r *http.Request) (string, error) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", auth.ErrNoCredentials
	}
	var sid string
	if err := s.codec.Decode(CookieName, c.Value, &sid); err != nil {
		return "", ErrInvalidSession
	}
	return sid, nil
}

// gcLocked descarta sesiones vencidas; se llama con mu tomado.
func (s *Scheme) gcLocked(now time.Time) {
	for sid, e := range s.sessions {
		if !now.Before(e.expiresAt) {
			delete(s.sessions, sid)
		}
	}
}
