package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"vet-records/internal/domain/pets"
	"vet-records/internal/domain/users"
	"vet-records/internal/domain/vets"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	notFound := fmt.Errorf("row not found")

	cases := []struct {
		name string
		in   error
		want error
	}{
		{"no rows", sql.ErrNoRows, notFound},
		{"duplicate email", &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "users_email_key"}, users.ErrEmailTaken},
		{"duplicate username", &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "users_username_key"}, users.ErrUsernameTaken},
		{"missing pet", fmt.Errorf("insert: %w", &pgconn.PgError{Code: codeForeignKeyViolation, ConstraintName: "billing_pet_id_fkey"}), pets.ErrNotFound},
		{"missing vet", &pgconn.PgError{Code: codeForeignKeyViolation, ConstraintName: "medical_records_vet_id_fkey"}, vets.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, translate(tc.in, notFound, "op"))
		})
	}

	assert.NoError(t, translate(nil, notFound, "op"))

	unknown := translate(&pgconn.PgError{Code: "42P01", Message: "relation does not exist"}, notFound, "list pets")
	assert.Contains(t, unknown.Error(), "list pets")
	assert.NotEqual(t, notFound, unknown)
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: codeForeignKeyViolation}))
	assert.False(t, isForeignKeyViolation(&pgconn.PgError{Code: codeUniqueViolation}))
	assert.False(t, isForeignKeyViolation(sql.ErrNoRows))
}
