package request

import "time"

type CreateRequest struct {
	ProviderID     int64       `json:"provider_id" binding:"required"`
	ClientID       int64       `json:"client_id"` // providers may file on a client's behalf
	ServiceID      *int64      `json:"service_id"`
	PreferredTimes []time.Time `json:"preferred_times" binding:"required,min=1"`
	Notes          string      `json:"notes"`
	ExpiresAt      *time.Time  `json:"expires_at"` // defaults to now+48h
}

type DecideRequest struct {
	ID           int64      `json:"id" binding:"required"`
	Status       string     `json:"status" binding:"required,oneof=accepted declined"`
	AcceptedTime *time.Time `json:"accepted_time"`
}
