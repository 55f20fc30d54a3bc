package availability

import (
	"context"
	"time"

	"fitbook/internal/domain"
)

// BlockRepository is the availability store.
type BlockRepository interface {
	Create(ctx context.Context, b *domain.AvailabilityBlock) error
	GetByID(ctx context.Context, id int64) (*domain.AvailabilityBlock, error)
	ListByProvider(ctx context.Context, providerID int64, blockType string) ([]domain.AvailabilityBlock, error)
	Update(ctx context.Context, b *domain.AvailabilityBlock) error
	Delete(ctx context.Context, id int64) error
	ReplaceForProvider(ctx context.Context, providerID int64, blocks []domain.AvailabilityBlock) error
}

// BookingReader supplies the active bookings the conflict filter runs
// against.
type BookingReader interface {
	ListActiveForProvider(ctx context.Context, providerID int64, from, to time.Time, holdTTL time.Duration) ([]domain.Booking, error)
}
