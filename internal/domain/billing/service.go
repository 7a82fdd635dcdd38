package billing

import (
	"context"
	"strings"
	"time"

	"vet-records/internal/platform/apperr"
)

var (
	ErrNotFound      = apperr.NotFound("Billing entry not found")
	ErrNegativePrice = apperr.Invalid("price cannot be negative")
	ErrEmptyField    = apperr.Invalid("type and description cannot be empty")
)

type UserLookup interface {
	Exists(ctx context.Context, userID int64) error
}

type PetLookup interface {
	CheckOwnedBy(ctx context.Context, petID, userID int64) error
}

type Service struct {
	repo  Repository
	users UserLookup
	pets  PetLookup
	now   func() time.Time
}

func NewService(repo Repository, users UserLookup, pets PetLookup) *Service {
	return &Service{
		repo:  repo,
		users: users,
		pets:  pets,
		now:   time.Now,
	}
}

type Fields struct {
	Type        string
	Price       float64
	Description string
	Date        time.Time
}

func (s *Service) Create(ctx context.Context, userID, petID int64, in Fields) (Entry, error) {
	if err := s.users.Exists(ctx, userID); err != nil {
		return Entry{}, err
	}
	if err := s.pets.CheckOwnedBy(ctx, petID, userID); err != nil {
		return Entry{}, err
	}

	e := Entry{
		UserID:    userID,
		PetID:     petID,
		CreatedAt: s.now().UTC(),
	}
	apply(&e, in)
	if err := validateEntry(e); err != nil {
		return Entry{}, err
	}

	created, err := s.repo.Create(ctx, e)
	if err != nil {
		return Entry{}, err
	}
	// se relee para traer pet_name
	return s.repo.GetByID(ctx, created.ID)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Entry, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]Entry, error) {
	if err := s.users.Exists(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

// Update reemplaza type, price, description y date. petID nil conserva la mascota.
func (s *Service) Update(ctx context.Context, id int64, petID *int64, in Fields) (Entry, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Entry{}, err
	}

	if petID != nil && *petID != e.PetID {
		if err := s.pets.CheckOwnedBy(ctx, *petID, e.UserID); err != nil {
			return Entry{}, err
		}
		e.PetID = *petID
	}
	apply(&e, in)
	if err := validateEntry(e); err != nil {
		return Entry{}, err
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return Entry{}, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func apply(e *Entry, in Fields) {
	e.Type = strings.TrimSpace(in.Type)
	e.Price = in.Price
	e.Description = strings.TrimSpace(in.Description)
	e.Date = in.Date
}

func validateEntry(e Entry) error {
	if e.Type == "" || e.Description == "" {
		return ErrEmptyField
	}
	if e.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}
