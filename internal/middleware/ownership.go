package middleware

import (
	"context"

	"vet-records/internal/platform/apperr"
)

var (
	ErrUserIDRequired = apperr.Invalid("user_id is required")
	ErrNotOwner       = apperr.Forbidden("Forbidden")
)

// ResolveUserID decide el dueño para listados y altas:
// - anónimo: user_id es obligatorio
// - autenticado sin user_id: se usa el id de la identidad
// - autenticado con otro user_id: 403
func ResolveUserID(ctx context.Context, supplied *int64) (int64, error) {
	claims, authenticated := GetClaims(ctx)
	switch {
	case supplied == nil && !authenticated:
		return 0, ErrUserIDRequired
	case supplied == nil:
		return claims.UserID, nil
	case authenticated && *supplied != claims.UserID:
		return 0, ErrNotOwner
	default:
		return *supplied, nil
	}
}

// CheckOwner: si hay identidad, tiene que ser la dueña de la fila.
func CheckOwner(ctx context.Context, ownerUserID int64) error {
	claims, ok := GetClaims(ctx)
	if ok && claims.UserID != ownerUserID {
		return ErrNotOwner
	}
	return nil
}
