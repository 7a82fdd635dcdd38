package postgres

import (
	"context"

	"vet-records/internal/domain/appointments"

	"github.com/jmoiron/sqlx"
)

// time se guarda como TIME y se devuelve como HH:MM.
const appointmentSelect = `
	SELECT a.id, a.user_id, a.pet_id, a.vet_id,
		p.name AS pet_name, v.name AS vet_name,
		a.reason, a.date, to_char(a.time, 'HH24:MI') AS time,
		a.location, a.notes, a.created_at
	FROM appointments a
	JOIN pets p ON p.id = a.pet_id
	JOIN vets v ON v.id = a.vet_id`

type AppointmentsRepo struct {
	db *sqlx.DB
}

func NewAppointmentsRepo(db *sqlx.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) (appointments.Appointment, error) {
	q, args, err := sqlx.Named(`
		INSERT INTO appointments (user_id, pet_id, vet_id, reason, date, time, location, notes, created_at)
		VALUES (:user_id, :pet_id, :vet_id, :reason, :date, CAST(:time AS TIME), :location, :notes, :created_at)
		RETURNING id
	`, a)
	if err != nil {
		return appointments.Appointment{}, translate(err, appointments.ErrNotFound, "bind appointment")
	}
	if err := r.db.GetContext(ctx, &a.ID, r.db.Rebind(q), args...); err != nil {
		return appointments.Appointment{}, translate(err, appointments.ErrNotFound, "insert appointment")
	}
	return a, nil
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id int64) (appointments.Appointment, error) {
	var a appointments.Appointment
	if err := r.db.GetContext(ctx, &a, appointmentSelect+` WHERE a.id = $1`, id); err != nil {
		return appointments.Appointment{}, translate(err, appointments.ErrNotFound, "get appointment")
	}
	return a, nil
}

func (r *AppointmentsRepo) ListByUser(ctx context.Context, userID int64) ([]appointments.Appointment, error) {
	out := make([]appointments.Appointment, 0)
	if err := r.db.SelectContext(ctx, &out, appointmentSelect+` WHERE a.user_id = $1 ORDER BY a.id ASC`, userID); err != nil {
		return nil, translate(err, appointments.ErrNotFound, "list appointments")
	}
	return out, nil
}

func (r *AppointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE appointments
		SET pet_id = :pet_id, vet_id = :vet_id, reason = :reason, date = :date,
			time = CAST(:time AS TIME), location = :location, notes = :notes
		WHERE id = :id
	`, a)
	if err != nil {
		return translate(err, appointments.ErrNotFound, "update appointment")
	}
	return expectOne(res, appointments.ErrNotFound)
}

func (r *AppointmentsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return translate(err, appointments.ErrNotFound, "delete appointment")
	}
	return expectOne(res, appointments.ErrNotFound)
}
