package postgres

import (
	"context"

	"vet-records/internal/domain/vets"

	"github.com/jmoiron/sqlx"
)

type VetsRepo struct {
	db *sqlx.DB
}

func NewVetsRepo(db *sqlx.DB) *VetsRepo {
	return &VetsRepo{db: db}
}

func (r *VetsRepo) Create(ctx context.Context, v vets.Vet) (vets.Vet, error) {
	err := r.db.GetContext(ctx, &v.ID, `
		INSERT INTO vets (name, specialty, information)
		VALUES ($1, $2, $3)
		RETURNING id
	`, v.Name, v.Specialty, v.Information)
	if err != nil {
		return vets.Vet{}, translate(err, vets.ErrNotFound, "insert vet")
	}
	return v, nil
}

func (r *VetsRepo) GetByID(ctx context.Context, id int64) (vets.Vet, error) {
	var v vets.Vet
	err := r.db.GetContext(ctx, &v, `SELECT id, name, specialty, information FROM vets WHERE id = $1`, id)
	if err != nil {
		return vets.Vet{}, translate(err, vets.ErrNotFound, "get vet")
	}
	return v, nil
}

func (r *VetsRepo) List(ctx context.Context) ([]vets.Vet, error) {
	out := make([]vets.Vet, 0)
	err := r.db.SelectContext(ctx, &out, `SELECT id, name, specialty, information FROM vets ORDER BY id ASC`)
	if err != nil {
		return nil, translate(err, vets.ErrNotFound, "list vets")
	}
	return out, nil
}

func (r *VetsRepo) Update(ctx context.Context, v vets.Vet) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE vets
		SET name = :name, specialty = :specialty, information = :information
		WHERE id = :id
	`, v)
	if err != nil {
		return translate(err, vets.ErrNotFound, "update vet")
	}
	return expectOne(res, vets.ErrNotFound)
}

// Delete: las FKs de turnos y registros no tienen cascade, así que un vet
// referenciado falla con 23503 y se informa como ErrInUse.
func (r *VetsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vets WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return vets.ErrInUse
		}
		return translate(err, vets.ErrNotFound, "delete vet")
	}
	return expectOne(res, vets.ErrNotFound)
}
