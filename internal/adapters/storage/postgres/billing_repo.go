package postgres

import (
	"context"

	"vet-records/internal/domain/billing"

	"github.com/jmoiron/sqlx"
)

const billingSelect = `
	SELECT b.id, b.user_id, b.pet_id, p.name AS pet_name,
		b.type, b.price, b.description, b.date, b.created_at
	FROM billing b
	JOIN pets p ON p.id = b.pet_id`

type BillingRepo struct {
	db *sqlx.DB
}

func NewBillingRepo(db *sqlx.DB) *BillingRepo {
	return &BillingRepo{db: db}
}

func (r *BillingRepo) Create(ctx context.Context, e billing.Entry) (billing.Entry, error) {
	err := r.db.GetContext(ctx, &e.ID, `
		INSERT INTO billing (user_id, pet_id, type, price, description, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, e.UserID, e.PetID, e.Type, e.Price, e.Description, e.Date, e.CreatedAt)
	if err != nil {
		return billing.Entry{}, translate(err, billing.ErrNotFound, "insert billing")
	}
	return e, nil
}

func (r *BillingRepo) GetByID(ctx context.Context, id int64) (billing.Entry, error) {
	var e billing.Entry
	if err := r.db.GetContext(ctx, &e, billingSelect+` WHERE b.id = $1`, id); err != nil {
		return billing.Entry{}, translate(err, billing.ErrNotFound, "get billing")
	}
	return e, nil
}

func (r *BillingRepo) ListByUser(ctx context.Context, userID int64) ([]billing.Entry, error) {
	out := make([]billing.Entry, 0)
	if err := r.db.SelectContext(ctx, &out, billingSelect+` WHERE b.user_id = $1 ORDER BY b.id ASC`, userID); err != nil {
		return nil, translate(err, billing.ErrNotFound, "list billing")
	}
	return out, nil
}

func (r *BillingRepo) Update(ctx context.Context, e billing.Entry) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE billing
		SET pet_id = :pet_id, type = :type, price = :price, description = :description, date = :date
		WHERE id = :id
	`, e)
	if err != nil {
		return translate(err, billing.ErrNotFound, "update billing")
	}
	return expectOne(res, billing.ErrNotFound)
}

func (r *BillingRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM billing WHERE id = $1`, id)
	if err != nil {
		return translate(err, billing.ErrNotFound, "delete billing")
	}
	return expectOne(res, billing.ErrNotFound)
}
