package booking

import (
	"context"
	"time"

	"fitbook/internal/domain"
	"fitbook/internal/pkg/validator"

	"github.com/jackc/pgx/v5/pgconn"
)

type Service struct {
	bookings BookingRepository
	services ServiceReader
	notifs   NotificationSender
	holdTTL  time.Duration
	now      func() time.Time
}

func NewService(bookings BookingRepository, services ServiceReader, notifs NotificationSender) *Service {
	return &Service{
		bookings: bookings,
		services: services,
		notifs:   notifs,
		holdTTL:  domain.DefaultSoftHoldTTL,
		now:      time.Now,
	}
}

// CreateBooking books a slot directly. The conflict check reads first, and
// the partial unique index idx_no_double_booking backstops the read against
// a concurrent insert: a 23505 from the datastore maps to ErrOverbooking.
func (s *Service) CreateBooking(ctx context.Context, clientID int64, req CreateBookingRequest) (*domain.Booking, error) {
	duration := req.DurationMinutes
	if req.ServiceID != nil {
		svc, err := s.services.GetByID(ctx, *req.ServiceID)
		if err != nil {
			return nil, ErrValidation
		}
		if svc.ProviderID != req.ProviderID || !svc.Active {
			return nil, ErrValidation
		}
		duration = svc.DurationMinutes
	}
	if duration <= 0 {
		return nil, ErrValidation
	}

	now := s.now()
	if !req.ScheduledAt.After(now) {
		return nil, ErrValidation
	}

	end := req.ScheduledAt.Add(time.Duration(duration) * time.Minute)
	conflict, err := s.bookings.HasConflict(ctx, req.ProviderID, req.ScheduledAt, end, s.holdTTL)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrNotAvailable
	}

	status := domain.BookingConfirmed
	if req.SoftHold {
		status = domain.BookingSoftHold
	}

	b := &domain.Booking{
		ProviderID:      req.ProviderID,
		ClientID:        clientID,
		ServiceID:       req.ServiceID,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: duration,
		Status:          status,
		Notes:           req.Notes,
	}
	if fields := validator.Validate(b); fields != nil {
		return nil, ErrValidation
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok {
			if pgErr.Code == "23505" && pgErr.ConstraintName == "idx_no_double_booking" {
				return nil, ErrOverbooking
			}
		}
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingCreated(ctx, b.ProviderID, b.ID, b.ClientID, b.ScheduledAt)
	}

	return b, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return b, nil
}

// ListForUser returns the caller's own calendar: the provider view or the
// client view, depending on role.
func (s *Service) ListForUser(ctx context.Context, userID int64, role domain.UserRole, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if role.IsProvider() {
		return s.bookings.ListByProvider(ctx, userID, limit, offset)
	}
	return s.bookings.ListByClient(ctx, userID, limit, offset)
}

// UpdateStatus advances the booking along its status machine. Only the
// provider who owns the booking may drive it.
func (s *Service) UpdateStatus(ctx context.Context, bookingID, actorID int64, newStatus string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, ErrNotFound
	}
	if b.ProviderID != actorID {
		return nil, ErrForbidden
	}

	next := domain.BookingStatus(newStatus)
	if !b.CanTransitionTo(next) {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		return nil, err
	}

	if s.notifs != nil && next == domain.BookingConfirmed {
		_ = s.notifs.NotifyBookingConfirmed(ctx, b.ClientID, b.ID)
	}

	return s.bookings.GetByID(ctx, bookingID)
}

// Cancel requires a reason and is allowed to either party.
func (s *Service) Cancel(ctx context.Context, bookingID, actorID int64, reason string) (*domain.Booking, error) {
	if reason == "" {
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, ErrNotFound
	}
	if b.ProviderID != actorID && b.ClientID != actorID {
		return nil, ErrForbidden
	}
	if !b.CanTransitionTo(domain.BookingCancelled) {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.bookings.CancelWithReason(ctx, bookingID, reason); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		notifyUser := b.ClientID
		if actorID == b.ClientID {
			notifyUser = b.ProviderID
		}
		_ = s.notifs.NotifyBookingCancelled(ctx, notifyUser, b.ID, reason)
	}

	return s.bookings.GetByID(ctx, bookingID)
}
