package medications

import "context"

type Repository interface {
	Create(ctx context.Context, m Medication) (Medication, error)
	GetByID(ctx context.Context, id int64) (Medication, error)
	ListByUser(ctx context.Context, userID int64) ([]Medication, error)
	Update(ctx context.Context, m Medication) error
	Delete(ctx context.Context, id int64) error
}
