package records

import (
	"context"
	"strings"
	"time"

	"vet-records/internal/platform/apperr"
)

var (
	ErrNotFound   = apperr.NotFound("Medical record not found")
	ErrEmptyField = apperr.Invalid("type and description cannot be empty")
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

// Fields son los datos editables. Name vacío toma el valor de Type.
type Fields struct {
	VetID       int64
	Name        string
	Type        string
	Date        time.Time
	Description string
}

func (s *Service) Create(ctx context.Context, userID, petID int64, in Fields) (Record, error) {
	rec := Record{UserID: userID, PetID: petID, CreatedAt: s.now().UTC()}
	apply(&rec, in)
	if err := validateRecord(rec); err != nil {
		return Record{}, err
	}
	if err := s.users.Exists(ctx, userID); err != nil {
		return Record{}, err
	}
	if err := s.pets.CheckOwnedBy(ctx, petID, userID); err != nil {
		return Record{}, err
	}
	if err := s.vets.Exists(ctx, rec.VetID); err != nil {
		return Record{}, err
	}

	created, err := s.repo.Create(ctx, rec)
	if err != nil {
		return Record{}, err
	}
	return s.repo.GetByID(ctx, created.ID)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Record, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]Record, error) {
	if err := s.users.Exists(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

// Update reemplaza type, date, description, vet y name. petID nil conserva la mascota.
func (s *Service) Update(ctx context.Context, id int64, petID *int64, in Fields) (Record, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Record{}, err
	}

	if petID != nil && *petID != rec.PetID {
		if err := s.pets.CheckOwnedBy(ctx, *petID, rec.UserID); err != nil {
			return Record{}, err
		}
		rec.PetID = *petID
	}
	apply(&rec, in)
	if err := validateRecord(rec); err != nil {
		return Record{}, err
	}
	if err := s.vets.Exists(ctx, rec.VetID); err != nil {
		return Record{}, err
	}

	if err := s.repo.Update(ctx, rec); err != nil {
		return Record{}, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func apply(rec *Record, in Fields) {
	rec.VetID = in.VetID
	rec.Type = strings.TrimSpace(in.Type)
	rec.Name = strings.TrimSpace(in.Name)
	if rec.Name == "" {
		rec.Name = rec.Type
	}
	rec.Date = in.Date
	rec.Description = strings.TrimSpace(in.Description)
}

func validateRecord(rec Record) error {
	if rec.Type == "" || rec.Description == "" {
		return ErrEmptyField
	}
	return nil
}
