package booking

import "time"

type CreateBookingRequest struct {
	ProviderID      int64     `json:"provider_id" binding:"required"`
	ServiceID       *int64    `json:"service_id"`
	ScheduledAt     time.Time `json:"scheduled_at" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"omitempty,gt=0"` // optional when service_id is set
	SoftHold        bool      `json:"soft_hold"`
	Notes           string    `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed completed cancelled"`
}

type CancelRequest struct {
	Reason string `json:"reason" binding:"required"`
}
