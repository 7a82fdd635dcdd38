package memory

import (
	"context"

	"vet-records/internal/domain/pets"
	"vet-records/internal/domain/users"
)

type petRepo struct {
	s *Store
}

func NewPetRepo(s *Store) pets.Repository {
	return &petRepo{s: s}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[p.UserID]; !ok {
		return pets.Pet{}, users.ErrNotFound
	}
	p.ID = r.s.nextID("pets")
	r.s.pets[p.ID] = p
	return p, nil
}

func (r *petRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.pets[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) ListByUser(ctx context.Context, userID int64) ([]pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, id := range sortedIDs(r.s.pets) {
		if p := r.s.pets[id]; p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.pets[p.ID]; !ok {
		return pets.ErrNotFound
	}
	r.s.pets[p.ID] = p
	return nil
}

// Delete borra la mascota y sus medicaciones, facturas, turnos y registros
// bajo el mismo lock.
func (r *petRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.pets[id]; !ok {
		return pets.ErrNotFound
	}
	for k, m := range r.s.medications {
		if m.PetID == id {
			delete(r.s.medications, k)
		}
	}
	for k, e := range r.s.billing {
		if e.PetID == id {
			delete(r.s.billing, k)
		}
	}
	for k, a := range r.s.appointments {
		if a.PetID == id {
			delete(r.s.appointments, k)
		}
	}
	for k, rec := range r.s.records {
		if rec.PetID == id {
			delete(r.s.records, k)
		}
	}
	delete(r.s.pets, id)
	return nil
}
