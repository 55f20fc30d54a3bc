package request

import (
	"context"
	"time"

	"fitbook/internal/domain"
)

// RequestRepository is the booking-request store. AcceptWithBooking must be
// transactional: either the booking lands and the request flips together,
// or neither does.
type RequestRepository interface {
	Create(ctx context.Context, req *domain.BookingRequest) error
	GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error)
	List(ctx context.Context, providerID, clientID int64, status string) ([]domain.BookingRequest, error)
	UpdateStatusFrom(ctx context.Context, id int64, from, to string) (bool, error)
	AcceptWithBooking(ctx context.Context, id int64, chosenTime time.Time, b *domain.Booking) error
	Delete(ctx context.Context, id int64) error
	MarkExpired(ctx context.Context, now time.Time) (int64, error)
}

// ServiceReader resolves catalog durations for accepted requests.
type ServiceReader interface {
	GetByID(ctx context.Context, id int64) (*domain.TrainingService, error)
}

// NotificationSender fans request events out to the affected users.
type NotificationSender interface {
	NotifyRequestCreated(ctx context.Context, providerID, requestID, clientID int64) error
	NotifyRequestAccepted(ctx context.Context, clientID, requestID, bookingID int64, chosenTime time.Time) error
	NotifyRequestDeclined(ctx context.Context, clientID, requestID int64) error
}
