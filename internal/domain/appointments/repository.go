package appointments

import "context"

// Repository: GetByID y ListByUser completan PetName y VetName.
type Repository interface {
	Create(ctx context.Context, a Appointment) (Appointment, error)
	GetByID(ctx context.Context, id int64) (Appointment, error)
	ListByUser(ctx context.Context, userID int64) ([]Appointment, error)
	Update(ctx context.Context, a Appointment) error
	Delete(ctx context.Context, id int64) error
}
