package postgres

import (
	"context"

	"vet-records/internal/domain/records"

	"github.com/jmoiron/sqlx"
)

const recordSelect = `
	SELECT m.id, m.user_id, m.pet_id, m.vet_id,
		p.name AS pet_name, v.name AS vet_name,
		m.name, m.type, m.date, m.description, m.created_at
	FROM medical_records m
	JOIN pets p ON p.id = m.pet_id
	JOIN vets v ON v.id = m.vet_id`

type RecordsRepo struct {
	db *sqlx.DB
}

func NewRecordsRepo(db *sqlx.DB) *RecordsRepo {
	return &RecordsRepo{db: db}
}

func (r *RecordsRepo) Create(ctx context.Context, rec records.Record) (records.Record, error) {
	err := r.db.GetContext(ctx, &rec.ID, `
		INSERT INTO medical_records (user_id, pet_id, vet_id, name, type, date, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, rec.UserID, rec.PetID, rec.VetID, rec.Name, rec.Type, rec.Date, rec.Description, rec.CreatedAt)
	if err != nil {
		return records.Record{}, translate(err, records.ErrNotFound, "insert medical record")
	}
	return rec, nil
}

func (r *RecordsRepo) GetByID(ctx context.Context, id int64) (records.Record, error) {
	var rec records.Record
	if err := r.db.GetContext(ctx, &rec, recordSelect+` WHERE m.id = $1`, id); err != nil {
		return records.Record{}, translate(err, records.ErrNotFound, "get medical record")
	}
	return rec, nil
}

func (r *RecordsRepo) ListByUser(ctx context.Context, userID int64) ([]records.Record, error) {
	out := make([]records.Record, 0)
	if err := r.db.SelectContext(ctx, &out, recordSelect+` WHERE m.user_id = $1 ORDER BY m.id ASC`, userID); err != nil {
		return nil, translate(err, records.ErrNotFound, "list medical records")
	}
	return out, nil
}

func (r *RecordsRepo) Update(ctx context.Context, rec records.Record) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE medical_records
		SET pet_id = :pet_id, vet_id = :vet_id, name = :name, type = :type,
			date = :date, description = :description
		WHERE id = :id
	`, rec)
	if err != nil {
		return translate(err, records.ErrNotFound, "update medical record")
	}
	return expectOne(res, records.ErrNotFound)
}

func (r *RecordsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM medical_records WHERE id = $1`, id)
	if err != nil {
		return translate(err, records.ErrNotFound, "delete medical record")
	}
	return expectOne(res, records.ErrNotFound)
}
