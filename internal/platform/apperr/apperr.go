// Package apperr agrupa los constructores de errores de dominio.
// Cada error lleva un mensaje apto para el cliente y un tipo de juju/errors
// que httpx traduce a status HTTP.
package apperr

import (
	"fmt"

	"github.com/juju/errors"
)

// Conflict no existe en juju/errors; lo usamos para filas todavía referenciadas.
const Conflict = errors.ConstError("conflict")

func Invalid(msg string) error {
	return errors.WithType(errors.New(msg), errors.NotValid)
}

func Invalidf(format string, args ...any) error {
	return Invalid(fmt.Sprintf(format, args...))
}

func NotFound(msg string) error {
	return errors.WithType(errors.New(msg), errors.NotFound)
}

// Duplicate marca una violación de unicidad (email, username).
func Duplicate(msg string) error {
	return errors.WithType(errors.New(msg), errors.AlreadyExists)
}

func Unauthorized(msg string) error {
	return errors.WithType(errors.New(msg), errors.Unauthorized)
}

func Forbidden(msg string) error {
	return errors.WithType(errors.New(msg), errors.Forbidden)
}

func InUse(msg string) error {
	return errors.WithType(errors.New(msg), Conflict)
}
