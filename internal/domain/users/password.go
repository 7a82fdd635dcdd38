package users

import (
	"crypto/subtle"

	"github.com/juju/errors"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes es el límite de bcrypt; lo que sobra se rechaza.
const MaxPasswordBytes = 72

func hashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", errors.Annotate(err, "hash password")
	}
	return string(b), nil
}

// verifyPassword devuelve (coincide, hay que re-hashear).
// Un valor guardado que no es bcrypt es una contraseña legada en texto plano.
func verifyPassword(stored, plain string) (bool, bool) {
	if _, err := bcrypt.Cost([]byte(stored)); err == nil {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil, false
	}
	ok := subtle.ConstantTimeCompare([]byte(stored), []byte(plain)) == 1
	return ok, ok
}
