package pets

import "time"

// Pet pertenece a un único usuario. Borrarla arrastra sus medicaciones,
// facturas, turnos y registros médicos.
type Pet struct {
	ID     int64 `db:"id"`
	UserID int64 `db:"user_id"`

	Name    string `db:"name"`
	Species string `db:"species"`
	Breed   string `db:"breed"`

	DOB    time.Time `db:"dob"`
	Weight float64   `db:"weight"` // kg, NUMERIC(5,2)
}

// MaxWeight es el límite exclusivo que admite la columna NUMERIC(5,2).
const MaxWeight = 1000
