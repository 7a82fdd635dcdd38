package middleware

import (
	"context"
	"net/http"

	"vet-records/internal/platform/apperr"
	"vet-records/internal/platform/httpx"
	"vet-records/internal/ports/auth"

	"github.com/juju/errors"
)

type ctxKey string

const (
	claimsKey  ctxKey = "claims"
	authErrKey ctxKey = "auth_error"
)

var ErrAuthRequired = apperr.Unauthorized("Authentication required")

// AuthContext:
// - Si authn resuelve identidad => setea claims.
// - Si la credencial vino pero es inválida => guarda el error (p.ej. /user distingue 401/422).
// - Nunca corta el request; los handlers (o RequireIdentity) deciden 401/403.
func AuthContext(authn auth.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if authn == nil {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := authn.Authenticate(r)
			switch {
			case err == nil:
				ctx := context.WithValue(r.Context(), claimsKey, claims)
				next.ServeHTTP(w, r.WithContext(ctx))
			case errors.Is(err, auth.ErrNoCredentials):
				next.ServeHTTP(w, r)
			default:
				ctx := context.WithValue(r.Context(), authErrKey, err)
				next.ServeHTTP(w, r.WithContext(ctx))
			}
		})
	}
}

// RequireIdentity corta con 401 los requests anónimos.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetClaims(r.Context()); !ok {
			err := AuthError(r.Context())
			if err == nil || !errors.Is(err, errors.Unauthorized) {
				err = ErrAuthRequired
			}
			httpx.WriteErrorMessage(w, http.StatusUnauthorized, err.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	if !ok || c.UserID <= 0 {
		return auth.Claims{}, false
	}
	return c, true
}

// AuthError devuelve el error de una credencial presentada pero rechazada.
func AuthError(ctx context.Context) error {
	err, _ := ctx.Value(authErrKey).(error)
	return err
}

// WithClaims inyecta claims; usado por tests de handlers.
func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}
