package memory

import (
	"context"

	"vet-records/internal/domain/vets"
)

type vetRepo struct {
	s *Store
}

func NewVetRepo(s *Store) vets.Repository {
	return &vetRepo{s: s}
}

func (r *vetRepo) Create(ctx context.Context, v vets.Vet) (vets.Vet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	v.ID = r.s.nextID("vets")
	r.s.vets[v.ID] = v
	return v, nil
}

func (r *vetRepo) GetByID(ctx context.Context, id int64) (vets.Vet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	v, ok := r.s.vets[id]
	if !ok {
		return vets.Vet{}, vets.ErrNotFound
	}
	return v, nil
}

func (r *vetRepo) List(ctx context.Context) ([]vets.Vet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]vets.Vet, 0, len(r.s.vets))
	for _, id := range sortedIDs(r.s.vets) {
		out = append(out, r.s.vets[id])
	}
	return out, nil
}

func (r *vetRepo) Update(ctx context.Context, v vets.Vet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.vets[v.ID]; !ok {
		return vets.ErrNotFound
	}
	r.s.vets[v.ID] = v
	return nil
}

// Delete equivale al ON DELETE RESTRICT de Postgres.
func (r *vetRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.vets[id]; !ok {
		return vets.ErrNotFound
	}
	for _, a := range r.s.appointments {
		if a.VetID == id {
			return vets.ErrInUse
		}
	}
	for _, rec := range r.s.records {
		if rec.VetID == id {
			return vets.ErrInUse
		}
	}
	delete(r.s.vets, id)
	return nil
}
