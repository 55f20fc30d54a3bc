package domain

import "time"

// TrainingService is a bookable offering in a provider's catalog, e.g. a
// 60-minute personal session.
type TrainingService struct {
	ID              int64     `json:"id"`
	ProviderID      int64     `json:"provider_id" validate:"required"`
	Name            string    `json:"name" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,gt=0"`
	Price           float64   `json:"price" validate:"gte=0"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
