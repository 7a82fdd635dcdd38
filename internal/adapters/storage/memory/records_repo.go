package memory

import (
	"context"

	"vet-records/internal/domain/records"
)

type recordRepo struct {
	s *Store
}

func NewRecordRepo(s *Store) records.Repository {
	return &recordRepo{s: s}
}

func (r *recordRepo) Create(ctx context.Context, rec records.Record) (records.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkRefs(rec); err != nil {
		return records.Record{}, err
	}
	rec.ID = r.s.nextID("records")
	rec.PetName, rec.VetName = "", ""
	r.s.records[rec.ID] = rec
	return rec, nil
}

func (r *recordRepo) GetByID(ctx context.Context, id int64) (records.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.records[id]
	if !ok {
		return records.Record{}, records.ErrNotFound
	}
	return r.joined(rec), nil
}

func (r *recordRepo) ListByUser(ctx context.Context, userID int64) ([]records.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]records.Record, 0)
	for _, id := range sortedIDs(r.s.records) {
		if rec := r.s.records[id]; rec.UserID == userID {
			out = append(out, r.joined(rec))
		}
	}
	return out, nil
}

func (r *recordRepo) Update(ctx context.Context, rec records.Record) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.records[rec.ID]; !ok {
		return records.ErrNotFound
	}
	if err := r.checkRefs(rec); err != nil {
		return err
	}
	rec.PetName, rec.VetName = "", ""
	r.s.records[rec.ID] = rec
	return nil
}

func (r *recordRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.records[id]; !ok {
		return records.ErrNotFound
	}
	delete(r.s.records, id)
	return nil
}

func (r *recordRepo) checkRefs(rec records.Record) error {
	if err := r.s.checkPetRefs(rec.UserID, rec.PetID); err != nil {
		return err
	}
	return r.s.checkVet(rec.VetID)
}

func (r *recordRepo) joined(rec records.Record) records.Record {
	rec.PetName = r.s.petName(rec.PetID)
	rec.VetName = r.s.vetName(rec.VetID)
	return rec
}
