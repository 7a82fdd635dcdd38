package router

import (
	"vet-records/internal/adapters/auth/debug"
	"vet-records/internal/adapters/auth/session"
	"vet-records/internal/adapters/auth/token"
	"vet-records/internal/platform/config"
	"vet-records/internal/ports/auth"

	"github.com/juju/errors"
)

// NewScheme arma el esquema de identidad según AUTH_MODE.
func NewScheme(cfg config.Config) (auth.Scheme, error) {
	switch cfg.AuthMode {
	case config.AuthModeToken:
		s, err := token.New(token.Config{
			Secret: []byte(cfg.JWTSecret),
			Issuer: cfg.JWTIssuer,
			TTL:    cfg.JWTTTL,
		})
		if err != nil {
			return nil, errors.Annotate(err, "token scheme")
		}
		return s, nil
	case config.AuthModeSession:
		s, err := session.New(session.Config{
			HashKey: []byte(cfg.SessionHashKey),
			TTL:     cfg.SessionTTL,
		})
		if err != nil {
			return nil, errors.Annotate(err, "session scheme")
		}
		return s, nil
	case config.AuthModeDebug:
		return debug.New(), nil
	default:
		return nil, errors.NotValidf("auth mode %q", cfg.AuthMode)
	}
}
