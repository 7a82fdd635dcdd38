package vets

// Vet es un veterinario del catálogo compartido; no tiene dueño.
type Vet struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Specialty   string `db:"specialty"`
	Information string `db:"information"`
}
