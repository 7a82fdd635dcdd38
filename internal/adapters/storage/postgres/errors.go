package postgres

import (
	"database/sql"
	stderrors "errors"

	"vet-records/internal/domain/pets"
	"vet-records/internal/domain/users"
	"vet-records/internal/domain/vets"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/juju/errors"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// constraintErrors traduce violaciones de constraints conocidas a errores de
// dominio. Los nombres son los que genera Postgres por defecto en las migraciones.
var constraintErrors = map[string]error{
	"users_email_key":    users.ErrEmailTaken,
	"users_username_key": users.ErrUsernameTaken,

	"pets_user_id_fkey":            users.ErrNotFound,
	"medications_user_id_fkey":     users.ErrNotFound,
	"billing_user_id_fkey":         users.ErrNotFound,
	"appointments_user_id_fkey":    users.ErrNotFound,
	"medical_records_user_id_fkey": users.ErrNotFound,

	"medications_pet_id_fkey":     pets.ErrNotFound,
	"billing_pet_id_fkey":         pets.ErrNotFound,
	"appointments_pet_id_fkey":    pets.ErrNotFound,
	"medical_records_pet_id_fkey": pets.ErrNotFound,

	"appointments_vet_id_fkey":    vets.ErrNotFound,
	"medical_records_vet_id_fkey": vets.ErrNotFound,
}

// translate convierte errores del driver. notFound se usa para sql.ErrNoRows.
// Lo que no se reconoce vuelve anotado y termina como 500.
func translate(err error, notFound error, op string) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, sql.ErrNoRows) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation, codeForeignKeyViolation:
			if mapped, ok := constraintErrors[pgErr.ConstraintName]; ok {
				return mapped
			}
		}
	}
	return errors.Annotate(err, op)
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return stderrors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation
}

// expectOne convierte "0 filas afectadas" en notFound.
func expectOne(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Annotate(err, "rows affected")
	}
	if n == 0 {
		return notFound
	}
	return nil
}
