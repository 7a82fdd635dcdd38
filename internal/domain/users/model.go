package users

import "time"

// User es el dueño de mascotas. Password guarda el hash bcrypt; filas de la
// versión previa al hashing pueden tener texto plano hasta su próximo login.
type User struct {
	ID        int64     `db:"id"`
	Email     string    `db:"email"`
	Username  string    `db:"username"`
	Password  string    `db:"password"`
	CreatedAt time.Time `db:"created_at"`
}
