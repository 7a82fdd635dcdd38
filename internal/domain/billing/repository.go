package billing

import "context"

// Repository: GetByID y ListByUser completan PetName.
type Repository interface {
	Create(ctx context.Context, e Entry) (Entry, error)
	GetByID(ctx context.Context, id int64) (Entry, error)
	ListByUser(ctx context.Context, userID int64) ([]Entry, error)
	Update(ctx context.Context, e Entry) error
	Delete(ctx context.Context, id int64) error
}
