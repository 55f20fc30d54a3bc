package repository

import (
	"context"
	"time"

	"fitbook/internal/domain"

	"gorm.io/gorm"
)

type AvailabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

type availabilityBlockModel struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	ProviderID  int64      `gorm:"column:provider_id;index"`
	BlockType   string     `gorm:"column:block_type"`
	Recurrence  string     `gorm:"column:recurrence"`
	DayOfWeek   int        `gorm:"column:day_of_week"`
	Date        *time.Time `gorm:"column:date"`
	StartHour   int        `gorm:"column:start_hour"`
	StartMinute int        `gorm:"column:start_minute"`
	EndHour     int        `gorm:"column:end_hour"`
	EndMinute   int        `gorm:"column:end_minute"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (availabilityBlockModel) TableName() string { return "availability_blocks" }

func toDomainBlock(m availabilityBlockModel) *domain.AvailabilityBlock {
	return &domain.AvailabilityBlock{
		ID:          m.ID,
		ProviderID:  m.ProviderID,
		BlockType:   domain.BlockType(m.BlockType),
		Recurrence:  domain.Recurrence(m.Recurrence),
		DayOfWeek:   m.DayOfWeek,
		Date:        m.Date,
		StartHour:   m.StartHour,
		StartMinute: m.StartMinute,
		EndHour:     m.EndHour,
		EndMinute:   m.EndMinute,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toBlockModel(b *domain.AvailabilityBlock) availabilityBlockModel {
	return availabilityBlockModel{
		ID:          b.ID,
		ProviderID:  b.ProviderID,
		BlockType:   string(b.BlockType),
		Recurrence:  string(b.Recurrence),
		DayOfWeek:   b.DayOfWeek,
		Date:        b.Date,
		StartHour:   b.StartHour,
		StartMinute: b.StartMinute,
		EndHour:     b.EndHour,
		EndMinute:   b.EndMinute,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (r *AvailabilityRepository) Create(ctx context.Context, b *domain.AvailabilityBlock) error {
	m := toBlockModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBlock(m)
	return nil
}

func (r *AvailabilityRepository) GetByID(ctx context.Context, id int64) (*domain.AvailabilityBlock, error) {
	var m availabilityBlockModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBlock(m), nil
}

func (r *AvailabilityRepository) ListByProvider(ctx context.Context, providerID int64, blockType string) ([]domain.AvailabilityBlock, error) {
	q := r.db.WithContext(ctx).Where("provider_id = ?", providerID)
	if blockType != "" {
		q = q.Where("block_type = ?", blockType)
	}

	var rows []availabilityBlockModel
	tx := q.Order("day_of_week, start_hour, start_minute").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.AvailabilityBlock, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBlock(m))
	}
	return out, nil
}

func (r *AvailabilityRepository) Update(ctx context.Context, b *domain.AvailabilityBlock) error {
	m := toBlockModel(b)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBlock(m)
	return nil
}

func (r *AvailabilityRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&availabilityBlockModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReplaceForProvider swaps a provider's schedule wholesale inside one
// transaction. Settings saves always send the full block set, never a diff.
func (r *AvailabilityRepository) ReplaceForProvider(ctx context.Context, providerID int64, blocks []domain.AvailabilityBlock) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("provider_id = ?", providerID).Delete(&availabilityBlockModel{}).Error; err != nil {
			return err
		}
		for i := range blocks {
			m := toBlockModel(&blocks[i])
			m.ID = 0
			m.ProviderID = providerID
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
			blocks[i] = *toDomainBlock(m)
		}
		return nil
	})
}
