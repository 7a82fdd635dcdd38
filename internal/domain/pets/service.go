package pets

import (
	"context"
	"strings"
	"time"

	"vet-records/internal/platform/apperr"
)

var (
	ErrNotFound    = apperr.NotFound("Pet not found")
	ErrNotOwnedBy  = apperr.Invalid("Pet does not belong to user")
	ErrWeightRange = apperr.Invalidf("weight must be greater than 0 and less than %d", MaxWeight)
	ErrDOBInFuture = apperr.Invalid("dob cannot be in the future")
	ErrEmptyField  = apperr.Invalid("name, species and breed cannot be empty")
)

// UserLookup valida que el dueño exista (users.Service lo implementa).
type UserLookup interface {
	Exists(ctx context.Context, userID int64) error
}

type Service struct {
	repo  Repository
	users UserLookup
	now   func() time.Time
}

func NewService(repo Repository, users UserLookup) *Service {
	return &Service{
		repo:  repo,
		users: users,
		now:   time.Now,
	}
}

type CreateInput struct {
	Name    string
	Species string
	Breed   string
	DOB     time.Time
	Weight  float64
}

func (s *Service) Create(ctx context.Context, userID int64, in CreateInput) (Pet, error) {
	if err := s.users.Exists(ctx, userID); err != nil {
		return Pet{}, err
	}

	p := Pet{
		UserID:  userID,
		Name:    strings.TrimSpace(in.Name),
		Species: strings.TrimSpace(in.Species),
		Breed:   strings.TrimSpace(in.Breed),
		DOB:     in.DOB,
		Weight:  in.Weight,
	}
	if err := s.validate(p); err != nil {
		return Pet{}, err
	}

	return s.repo.Create(ctx, p)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Pet, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByUser devuelve las mascotas del usuario ordenadas por id.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]Pet, error) {
	if err := s.users.Exists(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	Name    *string
	Species *string
	Breed   *string
	DOB     *time.Time
	Weight  *float64
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Pet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Species != nil {
		p.Species = strings.TrimSpace(*in.Species)
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.DOB != nil {
		p.DOB = *in.DOB
	}
	if in.Weight != nil {
		p.Weight = *in.Weight
	}

	if err := s.validate(p); err != nil {
		return Pet{}, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// OwnerOf expone el dueño de una mascota.
// Se usa para evitar ciclos de imports con los módulos hijos.
func (s *Service) OwnerOf(ctx context.Context, petID int64) (int64, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return 0, err
	}
	return p.UserID, nil
}

// CheckOwnedBy: la mascota existe (si no, ErrNotFound) y es de userID.
func (s *Service) CheckOwnedBy(ctx context.Context, petID, userID int64) error {
	owner, err := s.OwnerOf(ctx, petID)
	if err != nil {
		return err
	}
	if owner != userID {
		return ErrNotOwnedBy
	}
	return nil
}

func (s *Service) validate(p Pet) error {
	if p.Name == "" || p.Species == "" || p.Breed == "" {
		return ErrEmptyField
	}
	if p.Weight <= 0 || p.Weight >= MaxWeight {
		return ErrWeightRange
	}
	if p.DOB.After(s.now().UTC()) {
		return ErrDOBInFuture
	}
	return nil
}
