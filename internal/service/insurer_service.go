package service

import (
	"context"

	"github.com/google/uuid"

	"assurdoc/internal/domain"
	"assurdoc/internal/port"
)

// CreateInsurerInput is the DTO for insurer creation.
type CreateInsurerInput struct {
	Nom           string   `json:"nom" binding:"required"`
	Email         string   `json:"email" binding:"required,email"`
	Zones         []string `json:"zones"`
	Pays          []string `json:"pays"`
	International bool     `json:"international"`
}

// InsurerService manages insurer reference data.
type InsurerService interface {
	Create(ctx context.Context, input CreateInsurerInput) (*domain.Insurer, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Insurer, error)
	List(ctx context.Context) ([]domain.Insurer, error)
}

type insurerService struct {
	insurerRepo port.InsurerRepository
}

// NewInsurerService creates a new InsurerService implementation.
func NewInsurerService(insurerRepo port.InsurerRepository) InsurerService {
	return &insurerService{insurerRepo: insurerRepo}
}

func (s *insurerService) Create(ctx context.Context, input CreateInsurerInput) (*domain.Insurer, error) {
	insurer := &domain.Insurer{
		Nom:           input.Nom,
		Email:         input.Email,
		Zones:         input.Zones,
		Pays:          input.Pays,
		International: input.International,
	}
	if err := s.insurerRepo.Create(ctx, insurer); err != nil {
		return nil, err
	}
	return insurer, nil
}

func (s *insurerService) Get(ctx context.Context, id uuid.UUID) (*domain.Insurer, error) {
	return s.insurerRepo.GetByID(ctx, id)
}

func (s *insurerService) List(ctx context.Context) ([]domain.Insurer, error) {
	return s.insurerRepo.List(ctx)
}
