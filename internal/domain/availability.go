package domain

import "time"

type BlockType string

const (
	BlockAvailable BlockType = "available"
	BlockBlocked   BlockType = "blocked"
)

type Recurrence string

const (
	RecurrenceWeekly Recurrence = "weekly"
	RecurrenceOneOff Recurrence = "one_off"
)

// AvailabilityBlock is a recurring or one-off window in which a provider is
// open (or explicitly closed) for bookings. Times are wall-clock within a
// single day; start must precede end.
type AvailabilityBlock struct {
	ID          int64      `json:"id"`
	ProviderID  int64      `json:"provider_id" validate:"required"`
	BlockType   BlockType  `json:"block_type"`
	Recurrence  Recurrence `json:"recurrence"`
	DayOfWeek   int        `json:"day_of_week"` // 0=Sunday .. 6=Saturday, weekly only
	Date        *time.Time `json:"date,omitempty"`
	StartHour   int        `json:"start_hour"`
	StartMinute int        `json:"start_minute"`
	EndHour     int        `json:"end_hour"`
	EndMinute   int        `json:"end_minute"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// AppliesTo reports whether the block covers the given calendar date.
func (b AvailabilityBlock) AppliesTo(date time.Time) bool {
	switch b.Recurrence {
	case RecurrenceWeekly:
		return int(date.Weekday()) == b.DayOfWeek
	case RecurrenceOneOff:
		if b.Date == nil {
			return false
		}
		y1, m1, d1 := b.Date.Date()
		y2, m2, d2 := date.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	}
	return false
}

// WindowOn anchors the block's wall-clock window onto a concrete date.
func (b AvailabilityBlock) WindowOn(date time.Time) (start, end time.Time) {
	start = time.Date(date.Year(), date.Month(), date.Day(), b.StartHour, b.StartMinute, 0, 0, date.Location())
	end = time.Date(date.Year(), date.Month(), date.Day(), b.EndHour, b.EndMinute, 0, 0, date.Location())
	return start, end
}

// Valid checks the same-day start < end invariant.
func (b AvailabilityBlock) Valid() bool {
	if b.StartHour < 0 || b.StartHour > 23 || b.EndHour < 0 || b.EndHour > 23 {
		return false
	}
	if b.StartMinute < 0 || b.StartMinute > 59 || b.EndMinute < 0 || b.EndMinute > 59 {
		return false
	}
	return b.StartHour*60+b.StartMinute < b.EndHour*60+b.EndMinute
}

// Slot is a derived candidate appointment window. Slots are computed fresh
// per request and never persisted.
type Slot struct {
	ProviderID int64     `json:"provider_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Available  bool      `json:"available"`
}
