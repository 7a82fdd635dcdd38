package memory

import (
	"context"

	"vet-records/internal/domain/medications"
)

type medicationRepo struct {
	s *Store
}

func NewMedicationRepo(s *Store) medications.Repository {
	return &medicationRepo{s: s}
}

func (r *medicationRepo) Create(ctx context.Context, m medications.Medication) (medications.Medication, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.checkPetRefs(m.UserID, m.PetID); err != nil {
		return medications.Medication{}, err
	}
	m.ID = r.s.nextID("medications")
	r.s.medications[m.ID] = m
	return m, nil
}

func (r *medicationRepo) GetByID(ctx context.Context, id int64) (medications.Medication, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.medications[id]
	if !ok {
		return medications.Medication{}, medications.ErrNotFound
	}
	return m, nil
}

func (r *medicationRepo) ListByUser(ctx context.Context, userID int64) ([]medications.Medication, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]medications.Medication, 0)
	for _, id := range sortedIDs(r.s.medications) {
		if m := r.s.medications[id]; m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *medicationRepo) Update(ctx context.Context, m medications.Medication) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.medications[m.ID]; !ok {
		return medications.ErrNotFound
	}
	r.s.medications[m.ID] = m
	return nil
}

func (r *medicationRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.medications[id]; !ok {
		return medications.ErrNotFound
	}
	delete(r.s.medications, id)
	return nil
}
