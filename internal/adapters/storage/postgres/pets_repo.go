package postgres

import (
	"context"

	"vet-records/internal/domain/pets"

	"github.com/jmoiron/sqlx"
	"github.com/juju/errors"
)

// weight es NUMERIC; se lee como float8 para escanear directo a float64.
const petColumns = `id, user_id, name, species, breed, dob, weight::float8 AS weight`

type PetsRepo struct {
	db *sqlx.DB
}

func NewPetsRepo(db *sqlx.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	err := r.db.GetContext(ctx, &p.ID, `
		INSERT INTO pets (user_id, name, species, breed, dob, weight)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, p.UserID, p.Name, p.Species, p.Breed, p.DOB, p.Weight)
	if err != nil {
		return pets.Pet{}, translate(err, pets.ErrNotFound, "insert pet")
	}
	return p, nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	var p pets.Pet
	err := r.db.GetContext(ctx, &p, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)
	if err != nil {
		return pets.Pet{}, translate(err, pets.ErrNotFound, "get pet")
	}
	return p, nil
}

func (r *PetsRepo) ListByUser(ctx context.Context, userID int64) ([]pets.Pet, error) {
	out := make([]pets.Pet, 0)
	err := r.db.SelectContext(ctx, &out, `SELECT `+petColumns+` FROM pets WHERE user_id = $1 ORDER BY id ASC`, userID)
	if err != nil {
		return nil, translate(err, pets.ErrNotFound, "list pets")
	}
	return out, nil
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE pets
		SET name = :name, species = :species, breed = :breed, dob = :dob, weight = :weight
		WHERE id = :id
	`, p)
	if err != nil {
		return translate(err, pets.ErrNotFound, "update pet")
	}
	return expectOne(res, pets.ErrNotFound)
}

// Delete borra las filas hijas y la mascota en una transacción. El schema
// también declara ON DELETE CASCADE; los DELETE explícitos cubren bases que
// todavía no corrieron la migración 0003.
func (r *PetsRepo) Delete(ctx context.Context, id int64) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Annotate(err, "begin delete pet")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"medications", "billing", "appointments", "medical_records"} {
		if _, err = tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE pet_id = $1`, id); err != nil {
			return errors.Annotatef(err, "delete %s of pet", table)
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return errors.Annotate(err, "delete pet")
	}
	if err = expectOne(res, pets.ErrNotFound); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return errors.Annotate(err, "commit delete pet")
	}
	return nil
}
