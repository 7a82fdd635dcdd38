// Package debug resuelve la identidad desde el header X-Debug-User-ID.
// Solo para desarrollo local y tests; no hay login real.
package debug

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"vet-records/internal/platform/apperr"
	"vet-records/internal/ports/auth"
)

const (
	SchemeName = "debug"
	HeaderName = "X-Debug-User-ID"
)

var ErrBadHeader = apperr.Invalid("X-Debug-User-ID must be a positive integer")

type Scheme struct{}

func New() *Scheme { return &Scheme{} }

func (Scheme) Name() string { return SchemeName }

func (Scheme) Authenticate(r *http.Request) (auth.Claims, error) {
	raw := strings.TrimSpace(r.Header.Get(HeaderName))
	if raw == "" {
		return auth.Claims{}, auth.ErrNoCredentials
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return auth.Claims{}, ErrBadHeader
	}
	return auth.Claims{UserID: id, Scheme: SchemeName}, nil
}

func (Scheme) Establish(context.Context, http.ResponseWriter, int64) (string, error) {
	return "", nil
}

func (Scheme) Revoke(http.ResponseWriter, *http.Request) error {
	return nil
}
