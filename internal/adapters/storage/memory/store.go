package memory

import (
	"sort"
	"sync"

	"vet-records/internal/domain/appointments"
	"vet-records/internal/domain/billing"
	"vet-records/internal/domain/medications"
	"vet-records/internal/domain/pets"
	"vet-records/internal/domain/records"
	"vet-records/internal/domain/users"
	"vet-records/internal/domain/vets"
)

// Store guarda todas las tablas detrás de un único lock, así los borrados en
// cascada y los joins de lectura ven un estado consistente.
type Store struct {
	mu sync.RWMutex

	users        map[int64]users.User
	vets         map[int64]vets.Vet
	pets         map[int64]pets.Pet
	medications  map[int64]medications.Medication
	billing      map[int64]billing.Entry
	appointments map[int64]appointments.Appointment
	records      map[int64]records.Record

	// último id asignado por tabla (los ids no se reutilizan)
	seq map[string]int64
}

func NewStore() *Store {
	return &Store{
		users:        make(map[int64]users.User),
		vets:         make(map[int64]vets.Vet),
		pets:         make(map[int64]pets.Pet),
		medications:  make(map[int64]medications.Medication),
		billing:      make(map[int64]billing.Entry),
		appointments: make(map[int64]appointments.Appointment),
		records:      make(map[int64]records.Record),
		seq:          make(map[string]int64),
	}
}

// nextID requiere s.mu tomado en escritura.
func (s *Store) nextID(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

// sortedIDs devuelve las claves en orden ascendente.
func sortedIDs[T any](m map[int64]T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// petName y vetName resuelven los joins de lectura; requieren s.mu tomado.
func (s *Store) petName(id int64) string {
	return s.pets[id].Name
}

func (s *Store) vetName(id int64) string {
	return s.vets[id].Name
}

// checkPetRefs valida las claves foráneas de una fila hija de pet.
func (s *Store) checkPetRefs(userID, petID int64) error {
	if _, ok := s.users[userID]; !ok {
		return users.ErrNotFound
	}
	if _, ok := s.pets[petID]; !ok {
		return pets.ErrNotFound
	}
	return nil
}

func (s *Store) checkVet(vetID int64) error {
	if _, ok := s.vets[vetID]; !ok {
		return vets.ErrNotFound
	}
	return nil
}
