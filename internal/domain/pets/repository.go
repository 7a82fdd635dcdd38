package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) (Pet, error)
	GetByID(ctx context.Context, id int64) (Pet, error)
	ListByUser(ctx context.Context, userID int64) ([]Pet, error)
	Update(ctx context.Context, p Pet) error

	// Delete borra la mascota y todas sus filas dependientes de forma atómica.
	Delete(ctx context.Context, id int64) error
}
