package vets

import (
	"context"
	"strings"

	"vet-records/internal/platform/apperr"
)

var (
	ErrNotFound   = apperr.NotFound("Vet not found")
	ErrInUse      = apperr.InUse("Vet is referenced by appointments or medical records")
	ErrEmptyField = apperr.Invalid("name, specialty and information cannot be empty")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Name        string
	Specialty   string
	Information string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Vet, error) {
	v := Vet{
		Name:        strings.TrimSpace(in.Name),
		Specialty:   strings.TrimSpace(in.Specialty),
		Information: strings.TrimSpace(in.Information),
	}
	if err := validateVet(v); err != nil {
		return Vet{}, err
	}
	return s.repo.Create(ctx, v)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Vet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Vet, error) {
	return s.repo.List(ctx)
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	Name        *string
	Specialty   *string
	Information *string
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Vet, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Vet{}, err
	}
	if in.Name != nil {
		v.Name = strings.TrimSpace(*in.Name)
	}
	if in.Specialty != nil {
		v.Specialty = strings.TrimSpace(*in.Specialty)
	}
	if in.Information != nil {
		v.Information = strings.TrimSpace(*in.Information)
	}
	if err := validateVet(v); err != nil {
		return Vet{}, err
	}
	if err := s.repo.Update(ctx, v); err != nil {
		return Vet{}, err
	}
	return v, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Exists lo usan turnos y registros médicos para validar vet_id.
func (s *Service) Exists(ctx context.Context, id int64) error {
	_, err := s.repo.GetByID(ctx, id)
	return err
}

func validateVet(v Vet) error {
	if v.Name == "" || v.Specialty == "" || v.Information == "" {
		return ErrEmptyField
	}
	return nil
}
