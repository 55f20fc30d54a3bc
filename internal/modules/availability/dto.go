package availability

import "time"

type CreateBlockRequest struct {
	BlockType   string  `json:"block_type" binding:"required,oneof=available blocked"`
	Recurrence  string  `json:"recurrence" binding:"required,oneof=weekly one_off"`
	DayOfWeek   *int    `json:"day_of_week" binding:"omitempty,min=0,max=6"`
	Date        *string `json:"date"` // YYYY-MM-DD, one_off only
	StartHour   int     `json:"start_hour" binding:"min=0,max=23"`
	StartMinute int     `json:"start_minute" binding:"min=0,max=59"`
	EndHour     int     `json:"end_hour" binding:"min=0,max=23"`
	EndMinute   int     `json:"end_minute" binding:"min=0,max=59"`
}

type UpdateBlockRequest struct {
	ID int64 `json:"id" binding:"required"`
	CreateBlockRequest
}

type ReplaceScheduleRequest struct {
	Blocks []CreateBlockRequest `json:"blocks" binding:"required"`
}

type SlotResponse struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
}

// ExistingBooking is the trimmed view of an occupied interval returned by
// the raw client endpoint; client identity is not exposed.
type ExistingBooking struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
