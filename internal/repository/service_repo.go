package repository

import (
	"context"
	"time"

	"fitbook/internal/domain"

	"gorm.io/gorm"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

type trainingServiceModel struct {
	ID              int64     `gorm:"column:id;primaryKey"`
	ProviderID      int64     `gorm:"column:provider_id;index"`
	Name            string    `gorm:"column:name"`
	DurationMinutes int       `gorm:"column:duration_minutes"`
	Price           float64   `gorm:"column:price"`
	Active          bool      `gorm:"column:active"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (trainingServiceModel) TableName() string { return "training_services" }

func toDomainService(m trainingServiceModel) *domain.TrainingService {
	return &domain.TrainingService{
		ID:              m.ID,
		ProviderID:      m.ProviderID,
		Name:            m.Name,
		DurationMinutes: m.DurationMinutes,
		Price:           m.Price,
		Active:          m.Active,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toServiceModel(s *domain.TrainingService) trainingServiceModel {
	return trainingServiceModel{
		ID:              s.ID,
		ProviderID:      s.ProviderID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		Active:          s.Active,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.TrainingService) error {
	m := toServiceModel(s)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainService(m)
	return nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.TrainingService, error) {
	var m trainingServiceModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainService(m), nil
}

func (r *ServiceRepository) ListByProvider(ctx context.Context, providerID int64, activeOnly bool) ([]domain.TrainingService, error) {
	q := r.db.WithContext(ctx).Where("provider_id = ?", providerID)
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var rows []trainingServiceModel
	tx := q.Order("name").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.TrainingService, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainService(m))
	}
	return out, nil
}

func (r *ServiceRepository) Update(ctx context.Context, s *domain.TrainingService) error {
	m := toServiceModel(s)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainService(m)
	return nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&trainingServiceModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
