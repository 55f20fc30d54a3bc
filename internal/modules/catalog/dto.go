package catalog

type CreateServiceRequest struct {
	Name            string  `json:"name" binding:"required"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,gt=0"`
	Price           float64 `json:"price" binding:"gte=0"`
}

type UpdateServiceRequest struct {
	ID int64 `json:"id" binding:"required"`
	CreateServiceRequest
	Active *bool `json:"active"`
}
