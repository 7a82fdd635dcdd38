package medications

import "time"

// Medication es un tratamiento de una mascota. EndDate nil = en curso.
type Medication struct {
	ID     int64 `db:"id"`
	PetID  int64 `db:"pet_id"`
	UserID int64 `db:"user_id"`

	Name         string     `db:"name"`
	Dosage       string     `db:"dosage"`
	Description  *string    `db:"description"`
	StartDate    time.Time  `db:"start_date"`
	EndDate      *time.Time `db:"end_date"`
	SideEffects  *string    `db:"side_effects"`
	Instructions *string    `db:"instructions"`
	Refill       bool       `db:"refill"`

	CreatedAt time.Time `db:"created_at"`
}

// Ongoing es lo que se serializa como end_date cuando no hay fecha de fin.
const Ongoing = "Ongoing"
