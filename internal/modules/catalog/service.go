package catalog

import (
	"context"

	"fitbook/internal/domain"
)

// ServiceRepository is the training-service catalog store.
type ServiceRepository interface {
	Create(ctx context.Context, s *domain.TrainingService) error
	GetByID(ctx context.Context, id int64) (*domain.TrainingService, error)
	ListByProvider(ctx context.Context, providerID int64, activeOnly bool) ([]domain.TrainingService, error)
	Update(ctx context.Context, s *domain.TrainingService) error
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	services ServiceRepository
}

func NewService(services ServiceRepository) *Service {
	return &Service{services: services}
}

func (s *Service) Create(ctx context.Context, providerID int64, req CreateServiceRequest) (*domain.TrainingService, error) {
	if req.DurationMinutes <= 0 {
		return nil, ErrValidation
	}

	svc := &domain.TrainingService{
		ProviderID:      providerID,
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Active:          true,
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) List(ctx context.Context, providerID int64, activeOnly bool) ([]domain.TrainingService, error) {
	if providerID <= 0 {
		return nil, ErrValidation
	}
	return s.services.ListByProvider(ctx, providerID, activeOnly)
}

func (s *Service) Update(ctx context.Context, providerID int64, req UpdateServiceRequest) (*domain.TrainingService, error) {
	existing, err := s.services.GetByID(ctx, req.ID)
	if err != nil {
		return nil, ErrNotFound
	}
	if existing.ProviderID != providerID {
		return nil, ErrForbidden
	}
	if req.DurationMinutes <= 0 {
		return nil, ErrValidation
	}

	existing.Name = req.Name
	existing.DurationMinutes = req.DurationMinutes
	existing.Price = req.Price
	if req.Active != nil {
		existing.Active = *req.Active
	}

	if err := s.services.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *Service) Delete(ctx context.Context, providerID, serviceID int64) error {
	existing, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		return ErrNotFound
	}
	if existing.ProviderID != providerID {
		return ErrForbidden
	}
	return s.services.Delete(ctx, serviceID)
}
