package records

import "context"

// Repository: GetByID y ListByUser completan PetName y VetName.
type Repository interface {
	Create(ctx context.Context, rec Record) (Record, error)
	GetByID(ctx context.Context, id int64) (Record, error)
	ListByUser(ctx context.Context, userID int64) ([]Record, error)
	Update(ctx context.Context, rec Record) error
	Delete(ctx context.Context, id int64) error
}
