package medications

import (
	"context"
	"strings"
	"time"

	"vet-records/internal/platform/apperr"
)

var (
	ErrNotFound       = apperr.NotFound("Medication not found")
	ErrEndBeforeStart = apperr.Invalid("end_date cannot be before start_date")
	ErrEmptyField     = apperr.Invalid("name and dosage cannot be empty")
)

type UserLookup interface {
	Exists(ctx context.Context, userID int64) error
}

// PetLookup valida que la mascota exista y sea del usuario (pets.Service).
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

// Fields son los datos editables; un update los reemplaza todos.
type Fields struct {
	Name         string
	Dosage       string
	Description  *string
	StartDate    time.Time
	EndDate      *time.Time
	SideEffects  *string
	Instructions *string
	Refill       bool
}

func (s *Service) Create(ctx context.Context, userID, petID int64, in Fields) (Medication, error) {
	if err := s.users.Exists(ctx, userID); err != nil {
		return Medication{}, err
	}
	if err := s.pets.CheckOwnedBy(ctx, petID, userID); err != nil {
		return Medication{}, err
	}

	m := Medication{
		PetID:     petID,
		UserID:    userID,
		CreatedAt: s.now().UTC(),
	}
	apply(&m, in)
	if err := validateMedication(m); err != nil {
		return Medication{}, err
	}

	return s.repo.Create(ctx, m)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Medication, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]Medication, error) {
	if err := s.users.Exists(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

// Update reemplaza todos los campos editables; los opcionales ausentes quedan vacíos.
func (s *Service) Update(ctx context.Context, id int64, in Fields) (Medication, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Medication{}, err
	}
	apply(&m, in)
	if err := validateMedication(m); err != nil {
		return Medication{}, err
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func apply(m *Medication, in Fields) {
	m.Name = strings.TrimSpace(in.Name)
	m.Dosage = strings.TrimSpace(in.Dosage)
	m.Description = in.Description
	m.StartDate = in.StartDate
	m.EndDate = in.EndDate
	m.SideEffects = in.SideEffects
	m.Instructions = in.Instructions
	m.Refill = in.Refill
}

func validateMedication(m Medication) error {
	if m.Name == "" || m.Dosage == "" {
		return ErrEmptyField
	}
	if m.EndDate != nil && m.EndDate.Before(m.StartDate) {
		return ErrEndBeforeStart
	}
	return nil
}
