package appointments

import (
	"context"
	"strings"
	"time"

	"vet-records/internal/platform/apperr"
)

var (
	ErrNotFound   = apperr.NotFound("Appointment not found")
	ErrEmptyField = apperr.Invalid("reason and location cannot be empty")
)

type UserLookup interface {
	Exists(ctx context.Context, userID int64) error
}

type PetLookup interface {
	CheckOwnedBy(ctx context.Context, petID, userID int64) error
}

type VetLookup interface {
	Exists(ctx context.Context, vetID int64) error
}

type Service struct {
	repo  Repository
	users UserLookup
	pets  PetLookup
	vets  VetLookup
	now   func() time.Time
}

func NewService(repo Repository, users UserLookup, pets PetLookup, vets VetLookup) *Service {
	return &Service{
		repo:  repo,
		users: users,
		pets:  pets,
		vets:  vets,
		now:   time.Now,
	}
}

// Fields: un update reemplaza todos, incluidos mascota y veterinario.
type Fields struct {
	PetID    int64
	VetID    int64
	Reason   string
	Date     time.Time
	Time     string
	Location string
	Notes    *string
}

func (s *Service) Create(ctx context.Context, userID int64, in Fields) (Appointment, error) {
	a := Appointment{UserID: userID, CreatedAt: s.now().UTC()}
	apply(&a, in)
	if err := s.check(ctx, a); err != nil {
		return Appointment{}, err
	}

	created, err := s.repo.Create(ctx, a)
	if err != nil {
		return Appointment{}, err
	}
	return s.repo.GetByID(ctx, created.ID)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]Appointment, error) {
	if err := s.users.Exists(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Update(ctx context.Context, id int64, in Fields) (Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Appointment{}, err
	}
	apply(&a, in)
	if err := s.check(ctx, a); err != nil {
		return Appointment{}, err
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return Appointment{}, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func apply(a *Appointment, in Fields) {
	a.PetID = in.PetID
	a.VetID = in.VetID
	a.Reason = strings.TrimSpace(in.Reason)
	a.Date = in.Date
	a.Time = in.Time
	a.Location = strings.TrimSpace(in.Location)
	a.Notes = in.Notes
}

// check valida campos y referencias: usuario existente, mascota suya y vet existente.
func (s *Service) check(ctx context.Context, a Appointment) error {
	if a.Reason == "" || a.Location == "" {
		return ErrEmptyField
	}
	if err := s.users.Exists(ctx, a.UserID); err != nil {
		return err
	}
	if err := s.pets.CheckOwnedBy(ctx, a.PetID, a.UserID); err != nil {
		return err
	}
	return s.vets.Exists(ctx, a.VetID)
}
