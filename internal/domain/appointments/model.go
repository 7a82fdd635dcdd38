package appointments

import "time"

type Appointment struct {
	ID     int64 `db:"id"`
	UserID int64 `db:"user_id"`
	PetID  int64 `db:"pet_id"`
	VetID  int64 `db:"vet_id"`

	// resueltos al leer
	PetName string `db:"pet_name"`
	VetName string `db:"vet_name"`

	Reason   string    `db:"reason"`
	Date     time.Time `db:"date"`
	Time     string    `db:"time"` // HH:MM
	Location string    `db:"location"`
	Notes    *string   `db:"notes"`

	CreatedAt time.Time `db:"created_at"`
}
