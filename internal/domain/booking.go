package domain

import "time"

type BookingStatus string

const (
	BookingSoftHold  BookingStatus = "soft_hold"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// DefaultSoftHoldTTL is how long a soft-hold reserves its slot before the
// conflict checks stop honouring it.
const DefaultSoftHoldTTL = 15 * time.Minute

type Booking struct {
	ID                 int64         `json:"id"`
	ProviderID         int64         `json:"provider_id" validate:"required"`
	ClientID           int64         `json:"client_id" validate:"required"`
	ServiceID          *int64        `json:"service_id,omitempty"`
	ScheduledAt        time.Time     `json:"scheduled_at" validate:"required"`
	DurationMinutes    int           `json:"duration_minutes" validate:"required,gt=0"`
	Status             BookingStatus `json:"status"`
	Notes              string        `json:"notes,omitempty"`
	CancellationReason string        `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time    `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// EndsAt is the exclusive end of the booking's occupied interval.
func (b Booking) EndsAt() time.Time {
	return b.ScheduledAt.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// Active reports whether the booking still occupies its slot. A soft-hold
// stops counting once it has sat unconfirmed past the TTL.
func (b Booking) Active(now time.Time, holdTTL time.Duration) bool {
	switch b.Status {
	case BookingConfirmed:
		return true
	case BookingSoftHold:
		return now.Sub(b.CreatedAt) < holdTTL
	}
	return false
}

// CanTransitionTo encodes the booking status machine:
// soft_hold -> confirmed | cancelled, confirmed -> completed | cancelled.
func (b Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case BookingSoftHold:
		return next == BookingConfirmed || next == BookingCancelled
	case BookingConfirmed:
		return next == BookingCompleted || next == BookingCancelled
	}
	return false
}
