package request

import (
	"context"
	"errors"
	"time"

	"fitbook/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// DefaultDurationMinutes applies when a request names neither a catalog
// service nor a duration.
const DefaultDurationMinutes = 60

// Config carries the lifecycle knobs.
type Config struct {
	// RequireChosenPreferredTime rejects an accept whose chosen time is not
	// one of the request's preferred times. Off by default: historically the
	// provider could counter-propose any time at accept.
	RequireChosenPreferredTime bool
}

type Service struct {
	requests RequestRepository
	services ServiceReader
	notifs   NotificationSender
	cfg      Config
	now      func() time.Time
}

func NewService(requests RequestRepository, services ServiceReader, notifs NotificationSender, cfg Config) *Service {
	return &Service{
		requests: requests,
		services: services,
		notifs:   notifs,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *Service) Create(ctx context.Context, actorID int64, actorRole domain.UserRole, req CreateRequest) (*domain.BookingRequest, error) {
	if len(req.PreferredTimes) == 0 {
		return nil, ErrValidation
	}

	clientID := req.ClientID
	if !actorRole.IsProvider() {
		clientID = actorID
	}
	if clientID <= 0 {
		return nil, ErrValidation
	}

	now := s.now()
	expiresAt := now.Add(domain.DefaultRequestTTL)
	if req.ExpiresAt != nil {
		expiresAt = *req.ExpiresAt
	}

	r := &domain.BookingRequest{
		Reference:      uuid.NewString(),
		ProviderID:     req.ProviderID,
		ClientID:       clientID,
		ServiceID:      req.ServiceID,
		PreferredTimes: req.PreferredTimes,
		Notes:          req.Notes,
		Status:         domain.RequestPending,
		ExpiresAt:      expiresAt,
	}

	if err := s.requests.Create(ctx, r); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyRequestCreated(ctx, r.ProviderID, r.ID, r.ClientID)
	}

	return r, nil
}

// List returns the caller's requests with expiry folded in at read time:
// an overdue pending request reads as expired even before the sweeper has
// touched the row.
func (s *Service) List(ctx context.Context, actorID int64, actorRole domain.UserRole, status string) ([]domain.BookingRequest, error) {
	var providerID, clientID int64
	if actorRole.IsProvider() {
		providerID = actorID
	} else {
		clientID = actorID
	}

	list, err := s.requests.List(ctx, providerID, clientID, "")
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]domain.BookingRequest, 0, len(list))
	for _, r := range list {
		r.Status = r.EffectiveStatus(now)
		if status != "" && string(r.Status) != status {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Accept materializes a confirmed booking from the chosen time and flips
// the request, atomically. Valid only from pending.
func (s *Service) Accept(ctx context.Context, requestID, actorID int64, chosenTime time.Time) (*domain.BookingRequest, error) {
	r, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, ErrNotFound
	}
	if r.ProviderID != actorID {
		return nil, ErrForbidden
	}
	if r.EffectiveStatus(s.now()) != domain.RequestPending {
		return nil, ErrInvalidStateTransition
	}
	if s.cfg.RequireChosenPreferredTime && !r.HasPreferredTime(chosenTime) {
		return nil, ErrTimeNotPreferred
	}

	duration := DefaultDurationMinutes
	if r.ServiceID != nil {
		svc, err := s.services.GetByID(ctx, *r.ServiceID)
		if err == nil {
			duration = svc.DurationMinutes
		}
	}

	b := &domain.Booking{
		ProviderID:      r.ProviderID,
		ClientID:        r.ClientID,
		ServiceID:       r.ServiceID,
		ScheduledAt:     chosenTime,
		DurationMinutes: duration,
		Status:          domain.BookingConfirmed,
	}

	if err := s.requests.AcceptWithBooking(ctx, requestID, chosenTime, b); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// lost the race against a concurrent accept/decline
			return nil, ErrInvalidStateTransition
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "idx_no_double_booking" {
			// the slot got taken by a booking outside this request
			return nil, ErrBookingCreationConflict
		}
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyRequestAccepted(ctx, r.ClientID, r.ID, b.ID, chosenTime)
	}

	return s.requests.GetByID(ctx, requestID)
}

// Decline is valid only from pending and never creates a booking.
func (s *Service) Decline(ctx context.Context, requestID, actorID int64) (*domain.BookingRequest, error) {
	r, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, ErrNotFound
	}
	if r.ProviderID != actorID {
		return nil, ErrForbidden
	}
	if r.EffectiveStatus(s.now()) != domain.RequestPending {
		return nil, ErrInvalidStateTransition
	}

	moved, err := s.requests.UpdateStatusFrom(ctx, requestID, string(domain.RequestPending), string(domain.RequestDeclined))
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, ErrInvalidStateTransition
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyRequestDeclined(ctx, r.ClientID, r.ID)
	}

	return s.requests.GetByID(ctx, requestID)
}

// Delete removes the request regardless of status. An already-created
// booking is left untouched.
func (s *Service) Delete(ctx context.Context, requestID, actorID int64, actorRole domain.UserRole) error {
	r, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return ErrNotFound
	}
	if r.ProviderID != actorID && r.ClientID != actorID && actorRole != domain.RoleAdmin {
		return ErrForbidden
	}
	return s.requests.Delete(ctx, requestID)
}

// SweepExpired persists the expired status on overdue pending requests and
// returns how many rows moved. Reads stay correct without it.
func (s *Service) SweepExpired(ctx context.Context) (int64, error) {
	return s.requests.MarkExpired(ctx, s.now())
}
