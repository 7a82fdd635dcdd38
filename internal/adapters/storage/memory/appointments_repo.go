package memory

import (
	"context"

	"vet-records/internal/domain/appointments"
)

type appointmentRepo struct {
	s *Store
}

func NewAppointmentRepo(s *Store) appointments.Repository {
	return &appointmentRepo{s: s}
}

func (r *appointmentRepo) Create(ctx context.Context, a appointments.Appointment) (appointments.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkRefs(a); err != nil {
		return appointments.Appointment{}, err
	}
	a.ID = r.s.nextID("appointments")
	a.PetName, a.VetName = "", ""
	r.s.appointments[a.ID] = a
	return a, nil
}

func (r *appointmentRepo) GetByID(ctx context.Context, id int64) (appointments.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.appointments[id]
	if !ok {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	return r.joined(a), nil
}

func (r *appointmentRepo) ListByUser(ctx context.Context, userID int64) ([]appointments.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]appointments.Appointment, 0)
	for _, id := range sortedIDs(r.s.appointments) {
		if a := r.s.appointments[id]; a.UserID == userID {
			out = append(out, r.joined(a))
		}
	}
	return out, nil
}

func (r *appointmentRepo) Update(ctx context.Context, a appointments.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.appointments[a.ID]; !ok {
		return appointments.ErrNotFound
	}
	if err := r.checkRefs(a); err != nil {
		return err
	}
	a.PetName, a.VetName = "", ""
	r.s.appointments[a.ID] = a
	return nil
}

func (r *appointmentRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.appointments[id]; !ok {
		return appointments.ErrNotFound
	}
	delete(r.s.appointments, id)
	return nil
}

func (r *appointmentRepo) checkRefs(a appointments.Appointment) error {
	if err := r.s.checkPetRefs(a.UserID, a.PetID); err != nil {
		return err
	}
	return r.s.checkVet(a.VetID)
}

func (r *appointmentRepo) joined(a appointments.Appointment) appointments.Appointment {
	a.PetName = r.s.petName(a.PetID)
	a.VetName = r.s.vetName(a.VetID)
	return a
}
