package domain

import "time"

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestDeclined RequestStatus = "declined"
	RequestExpired  RequestStatus = "expired"
)

// DefaultRequestTTL is applied when a booking request is created without an
// explicit expiry.
const DefaultRequestTTL = 48 * time.Hour

// BookingRequest is a client-initiated proposal of one or more preferred
// times awaiting provider action.
type BookingRequest struct {
	ID             int64         `json:"id"`
	Reference      string        `json:"reference"` // opaque uuid shared with the client
	ProviderID     int64         `json:"provider_id" validate:"required"`
	ClientID       int64         `json:"client_id" validate:"required"`
	ServiceID      *int64        `json:"service_id,omitempty"`
	PreferredTimes []time.Time   `json:"preferred_times" validate:"required,min=1"`
	Notes          string        `json:"notes,omitempty"`
	Status         RequestStatus `json:"status"`
	ExpiresAt      time.Time     `json:"expires_at"`
	AcceptedTime   *time.Time    `json:"accepted_time,omitempty"`
	BookingID      *int64        `json:"booking_id,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// EffectiveStatus folds time-based expiry into the stored status. A pending
// request past its deadline reads as expired even before the sweeper has
// persisted the transition.
func (r BookingRequest) EffectiveStatus(now time.Time) RequestStatus {
	if r.Status == RequestPending && now.After(r.ExpiresAt) {
		return RequestExpired
	}
	return r.Status
}

// HasPreferredTime reports whether t matches one of the proposed times.
func (r BookingRequest) HasPreferredTime(t time.Time) bool {
	for _, p := range r.PreferredTimes {
		if p.Equal(t) {
			return true
		}
	}
	return false
}
