package repository

import (
	"context"
	"time"

	"fitbook/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID                 int64      `gorm:"column:id;primaryKey"`
	ProviderID         int64      `gorm:"column:provider_id;index"`
	ClientID           int64      `gorm:"column:client_id;index"`
	ServiceID          *int64     `gorm:"column:service_id"`
	ScheduledAt        time.Time  `gorm:"column:scheduled_at"`
	ScheduledEnd       time.Time  `gorm:"column:scheduled_end;index"`
	DurationMinutes    int        `gorm:"column:duration_minutes"`
	Status             string     `gorm:"column:status"`
	Notes              *string    `gorm:"column:notes"`
	CancellationReason *string    `gorm:"column:cancellation_reason"`
	CancelledAt        *time.Time `gorm:"column:cancelled_at"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var notes, reason string
	if m.Notes != nil {
		notes = *m.Notes
	}
	if m.CancellationReason != nil {
		reason = *m.CancellationReason
	}

	return &domain.Booking{
		ID:                 m.ID,
		ProviderID:         m.ProviderID,
		ClientID:           m.ClientID,
		ServiceID:          m.ServiceID,
		ScheduledAt:        m.ScheduledAt,
		DurationMinutes:    m.DurationMinutes,
		Status:             domain.BookingStatus(m.Status),
		Notes:              notes,
		CancellationReason: reason,
		CancelledAt:        m.CancelledAt,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var notes, reason *string
	if b.Notes != "" {
		v := b.Notes
		notes = &v
	}
	if b.CancellationReason != "" {
		v := b.CancellationReason
		reason = &v
	}

	return bookingModel{
		ID:                 b.ID,
		ProviderID:         b.ProviderID,
		ClientID:           b.ClientID,
		ServiceID:          b.ServiceID,
		ScheduledAt:        b.ScheduledAt,
		// denormalized end time keeps the overlap SQL free of dialect-specific
		// interval arithmetic; scheduled_at and duration never change after insert
		ScheduledEnd:       b.EndsAt(),
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		Notes:              notes,
		CancellationReason: reason,
		CancelledAt:        b.CancelledAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// ListActiveForProvider returns bookings that still occupy calendar time in
// [from, to): confirmed bookings plus soft-holds younger than holdTTL.
func (r *BookingRepository) ListActiveForProvider(ctx context.Context, providerID int64, from, to time.Time, holdTTL time.Duration) ([]domain.Booking, error) {
	holdCutoff := time.Now().Add(-holdTTL)

	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Where("scheduled_at < ? AND scheduled_end > ?", to, from).
		Where("(status = ? OR (status = ? AND created_at > ?))",
			string(domain.BookingConfirmed), string(domain.BookingSoftHold), holdCutoff).
		Order("scheduled_at").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// HasConflict reports whether an active booking strictly overlaps
// [start, end) for the provider. Back-to-back intervals do not conflict.
func (r *BookingRepository) HasConflict(ctx context.Context, providerID int64, start, end time.Time, holdTTL time.Duration) (bool, error) {
	holdCutoff := time.Now().Add(-holdTTL)

	var cnt int64
	q := `
SELECT COUNT(1)
FROM bookings
WHERE provider_id = ?
  AND (status = 'confirmed' OR (status = 'soft_hold' AND created_at > ?))
  AND scheduled_at < ?
  AND scheduled_end > ?
`
	tx := r.db.WithContext(ctx).Raw(q, providerID, holdCutoff, end, start).Scan(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

func (r *BookingRepository) ListByProvider(ctx context.Context, providerID int64, limit, offset int) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("scheduled_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) ListByClient(ctx context.Context, clientID int64, limit, offset int) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("scheduled_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", id).
		Update("status", status)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BookingRepository) CancelWithReason(ctx context.Context, id int64, reason string) error {
	now := time.Now()
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":              string(domain.BookingCancelled),
			"cancellation_reason": reason,
			"cancelled_at":        &now,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
