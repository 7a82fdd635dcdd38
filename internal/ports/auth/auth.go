package auth

import (
	"context"
	"net/http"

	"github.com/juju/errors"
)

// ErrNoCredentials: el request no trae token, cookie ni header de debug.
// No es un fallo; el request sigue como anónimo.
const ErrNoCredentials = errors.ConstError("no credentials")

// Claims representa la identidad extraída de la credencial.
type Claims struct {
	UserID int64

	// Scheme que resolvió la identidad ("token", "session", "debug").
	Scheme string
}

// Authenticator resuelve la identidad de un request.
// Errores: ErrNoCredentials, Unauthorized (credencial inválida o vencida),
// NotValid (credencial válida con subject mal formado).
type Authenticator interface {
	Authenticate(r *http.Request) (Claims, error)
}

// Scheme es un Authenticator que además sabe emitir y revocar credenciales.
// Cambiar de esquema (token, sesión) no toca los handlers.
type Scheme interface {
	Authenticator

	Name() string

	// Establish emite la credencial para userID. Devuelve el token si el
	// esquema lo expone al cliente ("" si va en cookie).
	Establish(ctx context.Context, w http.ResponseWriter, userID int64) (string, error)

	Revoke(w http.ResponseWriter, r *http.Request) error
}
