package records

import "time"

// Record es una entrada de la historia clínica (vacuna, consulta, cirugía...).
type Record struct {
	ID     int64 `db:"id"`
	UserID int64 `db:"user_id"`
	PetID  int64 `db:"pet_id"`
	VetID  int64 `db:"vet_id"`

	// resueltos al leer
	PetName string `db:"pet_name"`
	VetName string `db:"vet_name"`

	Name        string    `db:"name"`
	Type        string    `db:"type"`
	Date        time.Time `db:"date"`
	Description string    `db:"description"`

	CreatedAt time.Time `db:"created_at"`
}
