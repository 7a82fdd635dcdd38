package vets

import "context"

type Repository interface {
	Create(ctx context.Context, v Vet) (Vet, error)
	GetByID(ctx context.Context, id int64) (Vet, error)
	List(ctx context.Context) ([]Vet, error)
	Update(ctx context.Context, v Vet) error

	// Delete devuelve ErrInUse si hay turnos o registros que lo referencian.
	Delete(ctx context.Context, id int64) error
}
