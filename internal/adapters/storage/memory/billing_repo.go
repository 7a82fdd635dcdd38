package memory

import (
	"context"

	"vet-records/internal/domain/billing"
)

type billingRepo struct {
	s *Store
}

func NewBillingRepo(s *Store) billing.Repository {
	return &billingRepo{s: s}
}

func (r *billingRepo) Create(ctx context.Context, e billing.Entry) (billing.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.checkPetRefs(e.UserID, e.PetID); err != nil {
		return billing.Entry{}, err
	}
	e.ID = r.s.nextID("billing")
	e.PetName = ""
	r.s.billing[e.ID] = e
	return e, nil
}

func (r *billingRepo) GetByID(ctx context.Context, id int64) (billing.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.billing[id]
	if !ok {
		return billing.Entry{}, billing.ErrNotFound
	}
	e.PetName = r.s.petName(e.PetID)
	return e, nil
}

func (r *billingRepo) ListByUser(ctx context.Context, userID int64) ([]billing.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]billing.Entry, 0)
	for _, id := range sortedIDs(r.s.billing) {
		e := r.s.billing[id]
		if e.UserID != userID {
			continue
		}
		e.PetName = r.s.petName(e.PetID)
		out = append(out, e)
	}
	return out, nil
}

func (r *billingRepo) Update(ctx context.Context, e billing.Entry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.billing[e.ID]; !ok {
		return billing.ErrNotFound
	}
	if err := r.s.checkPetRefs(e.UserID, e.PetID); err != nil {
		return err
	}
	e.PetName = ""
	r.s.billing[e.ID] = e
	return nil
}

func (r *billingRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.billing[id]; !ok {
		return billing.ErrNotFound
	}
	delete(r.s.billing, id)
	return nil
}
