package notification

import (
	"context"
	"fmt"
	"time"

	"fitbook/internal/domain"
)

// Repository is the notification store.
type Repository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, id, userID int64) error
}

type Service struct {
	repo Repository
	hub  *Hub
}

func NewService(repo Repository, hub *Hub) *Service {
	return &Service{repo: repo, hub: hub}
}

func (s *Service) create(ctx context.Context, userID int64, t domain.NotificationType, title, message string, data map[string]any) error {
	n := &domain.Notification{
		UserID:    userID,
		Type:      t,
		Title:     title,
		Message:   message,
		Data:      data,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	if s.hub != nil {
		s.hub.SendToUser(userID, n)
	}
	return nil
}

func (s *Service) ListForUser(ctx context.Context, userID int64, limit int) ([]domain.Notification, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	list, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		unread = 0
	}

	return list, unread, nil
}

func (s *Service) MarkRead(ctx context.Context, id, userID int64) error {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *Service) NotifyBookingCreated(ctx context.Context, providerID, bookingID, clientID int64, start time.Time) error {
	return s.create(
		ctx,
		providerID,
		domain.NotifBookingCreated,
		"New booking",
		fmt.Sprintf("A session was booked for %s", start.Format("02 Jan 2006 15:04")),
		map[string]any{
			"booking_id": bookingID,
			"client_id":  clientID,
		},
	)
}

func (s *Service) NotifyBookingConfirmed(ctx context.Context, clientID, bookingID int64) error {
	return s.create(
		ctx,
		clientID,
		domain.NotifBookingConfirmed,
		"Booking confirmed",
		"Your session has been confirmed by the trainer",
		map[string]any{"booking_id": bookingID},
	)
}

func (s *Service) NotifyBookingCancelled(ctx context.Context, clientID, bookingID int64, reason string) error {
	msg := "Your session has been cancelled"
	if reason != "" {
		msg = msg + ". Reason: " + reason
	}
	return s.create(
		ctx,
		clientID,
		domain.NotifBookingCancelled,
		"Booking cancelled",
		msg,
		map[string]any{"booking_id": bookingID},
	)
}

func (s *Service) NotifyRequestCreated(ctx context.Context, providerID, requestID, clientID int64) error {
	return s.create(
		ctx,
		providerID,
		domain.NotifRequestCreated,
		"New booking request",
		"A client proposed session times and is waiting for your answer",
		map[string]any{
			"request_id": requestID,
			"client_id":  clientID,
		},
	)
}

func (s *Service) NotifyRequestAccepted(ctx context.Context, clientID, requestID, bookingID int64, chosenTime time.Time) error {
	return s.create(
		ctx,
		clientID,
		domain.NotifRequestAccepted,
		"Request accepted",
		fmt.Sprintf("Your trainer accepted a session at %s", chosenTime.Format("02 Jan 2006 15:04")),
		map[string]any{
			"request_id": requestID,
			"booking_id": bookingID,
		},
	)
}

func (s *Service) NotifyRequestDeclined(ctx context.Context, clientID, requestID int64) error {
	return s.create(
		ctx,
		clientID,
		domain.NotifRequestDeclined,
		"Request declined",
		"Your trainer declined the proposed times",
		map[string]any{"request_id": requestID},
	)
}
