package booking

import (
	"context"
	"time"

	"fitbook/internal/domain"
)

// BookingRepository is the booking store.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	HasConflict(ctx context.Context, providerID int64, start, end time.Time, holdTTL time.Duration) (bool, error)
	ListByProvider(ctx context.Context, providerID int64, limit, offset int) ([]domain.Booking, error)
	ListByClient(ctx context.Context, clientID int64, limit, offset int) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	CancelWithReason(ctx context.Context, id int64, reason string) error
}

// ServiceReader resolves a booked offering's duration when the request
// names a catalog service instead of an explicit duration.
type ServiceReader interface {
	GetByID(ctx context.Context, id int64) (*domain.TrainingService, error)
}

// NotificationSender fans booking events out to the affected users.
type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, providerID, bookingID, clientID int64, start time.Time) error
	NotifyBookingConfirmed(ctx context.Context, clientID, bookingID int64) error
	NotifyBookingCancelled(ctx context.Context, clientID, bookingID int64, reason string) error
}
