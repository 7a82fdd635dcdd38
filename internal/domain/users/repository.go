package users

import "context"

type Repository interface {
	// Create inserta y devuelve el usuario con su id asignado.
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
}
