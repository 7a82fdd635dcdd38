package postgres

import (
	"context"

	"vet-records/internal/domain/medications"

	"github.com/jmoiron/sqlx"
)

const medicationColumns = `
	id, pet_id, user_id, name, dosage, description,
	start_date, end_date, side_effects, instructions, refill, created_at`

type MedicationsRepo struct {
	db *sqlx.DB
}

func NewMedicationsRepo(db *sqlx.DB) *MedicationsRepo {
	return &MedicationsRepo{db: db}
}

func (r *MedicationsRepo) Create(ctx context.Context, m medications.Medication) (medications.Medication, error) {
	q, args, err := sqlx.Named(`
		INSERT INTO medications (
			pet_id, user_id, name, dosage, description,
			start_date, end_date, side_effects, instructions, refill, created_at
		) VALUES (
			:pet_id, :user_id, :name, :dosage, :description,
			:start_date, :end_date, :side_effects, :instructions, :refill, :created_at
		)
		RETURNING id
	`, m)
	if err != nil {
		return medications.Medication{}, translate(err, medications.ErrNotFound, "bind medication")
	}
	if err := r.db.GetContext(ctx, &m.ID, r.db.Rebind(q), args...); err != nil {
		return medications.Medication{}, translate(err, medications.ErrNotFound, "insert medication")
	}
	return m, nil
}

func (r *MedicationsRepo) GetByID(ctx context.Context, id int64) (medications.Medication, error) {
	var m medications.Medication
	err := r.db.GetContext(ctx, &m, `SELECT `+medicationColumns+` FROM medications WHERE id = $1`, id)
	if err != nil {
		return medications.Medication{}, translate(err, medications.ErrNotFound, "get medication")
	}
	return m, nil
}

func (r *MedicationsRepo) ListByUser(ctx context.Context, userID int64) ([]medications.Medication, error) {
	out := make([]medications.Medication, 0)
	err := r.db.SelectContext(ctx, &out, `SELECT `+medicationColumns+` FROM medications WHERE user_id = $1 ORDER BY id ASC`, userID)
	if err != nil {
		return nil, translate(err, medications.ErrNotFound, "list medications")
	}
	return out, nil
}

func (r *MedicationsRepo) Update(ctx context.Context, m medications.Medication) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE medications
		SET name = :name, dosage = :dosage, description = :description,
			start_date = :start_date, end_date = :end_date,
			side_effects = :side_effects, instructions = :instructions, refill = :refill
		WHERE id = :id
	`, m)
	if err != nil {
		return translate(err, medications.ErrNotFound, "update medication")
	}
	return expectOne(res, medications.ErrNotFound)
}

func (r *MedicationsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM medications WHERE id = $1`, id)
	if err != nil {
		return translate(err, medications.ErrNotFound, "delete medication")
	}
	return expectOne(res, medications.ErrNotFound)
}
