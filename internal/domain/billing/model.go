package billing

import "time"

// Entry es un cargo facturado a un usuario por una de sus mascotas.
type Entry struct {
	ID     int64 `db:"id"`
	UserID int64 `db:"user_id"`
	PetID  int64 `db:"pet_id"`

	// PetName se resuelve al leer (join); no se persiste.
	PetName string `db:"pet_name"`

	Type        string    `db:"type"`
	Price       float64   `db:"price"`
	Description string    `db:"description"`
	Date        time.Time `db:"date"`

	CreatedAt time.Time `db:"created_at"`
}
