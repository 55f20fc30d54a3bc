package domain

import "time"

type NotificationType string

const (
	NotifBookingCreated   NotificationType = "booking.created"
	NotifBookingConfirmed NotificationType = "booking.confirmed"
	NotifBookingCancelled NotificationType = "booking.cancelled"
	NotifRequestCreated   NotificationType = "request.created"
	NotifRequestAccepted  NotificationType = "request.accepted"
	NotifRequestDeclined  NotificationType = "request.declined"
)

type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Data      map[string]any   `json:"data,omitempty"`
	ReadAt    *time.Time       `json:"read_at,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

func (n Notification) IsRead() bool { return n.ReadAt != nil }
