package availability

import (
	"context"
	"time"

	"fitbook/internal/domain"
)

type Service struct {
	blocks   BlockRepository
	bookings BookingReader
	holdTTL  time.Duration
	now      func() time.Time
}

func NewService(blocks BlockRepository, bookings BookingReader) *Service {
	return &Service{
		blocks:   blocks,
		bookings: bookings,
		holdTTL:  domain.DefaultSoftHoldTTL,
		now:      time.Now,
	}
}

func (s *Service) ListBlocks(ctx context.Context, providerID int64, blockType string) ([]domain.AvailabilityBlock, error) {
	if providerID <= 0 {
		return nil, ErrValidation
	}
	return s.blocks.ListByProvider(ctx, providerID, blockType)
}

func (s *Service) CreateBlock(ctx context.Context, providerID int64, req CreateBlockRequest) (*domain.AvailabilityBlock, error) {
	b, err := blockFromRequest(providerID, req)
	if err != nil {
		return nil, err
	}
	if err := s.blocks.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) UpdateBlock(ctx context.Context, providerID int64, req UpdateBlockRequest) (*domain.AvailabilityBlock, error) {
	existing, err := s.blocks.GetByID(ctx, req.ID)
	if err != nil {
		return nil, ErrNotFound
	}
	if existing.ProviderID != providerID {
		return nil, ErrForbidden
	}

	b, err := blockFromRequest(providerID, req.CreateBlockRequest)
	if err != nil {
		return nil, err
	}
	b.ID = existing.ID
	b.CreatedAt = existing.CreatedAt

	if err := s.blocks.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) DeleteBlock(ctx context.Context, providerID, blockID int64) error {
	existing, err := s.blocks.GetByID(ctx, blockID)
	if err != nil {
		return ErrNotFound
	}
	if existing.ProviderID != providerID {
		return ErrForbidden
	}
	return s.blocks.Delete(ctx, blockID)
}

// ReplaceSchedule swaps the provider's whole block set. Settings saves send
// the full schedule every time, so there is no per-block merge.
func (s *Service) ReplaceSchedule(ctx context.Context, providerID int64, req ReplaceScheduleRequest) ([]domain.AvailabilityBlock, error) {
	blocks := make([]domain.AvailabilityBlock, 0, len(req.Blocks))
	for _, br := range req.Blocks {
		b, err := blockFromRequest(providerID, br)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, *b)
	}

	if err := s.blocks.ReplaceForProvider(ctx, providerID, blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

// GetSlots runs the full computation for one provider, date and duration:
// expand availability, then mark conflicts against active bookings.
func (s *Service) GetSlots(ctx context.Context, providerID int64, dateStr string, durationMinutes int) ([]domain.Slot, error) {
	if providerID <= 0 || durationMinutes <= 0 {
		return nil, ErrValidation
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, ErrValidation
	}

	blocks, err := s.blocks.ListByProvider(ctx, providerID, "")
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	bookings, err := s.bookings.ListActiveForProvider(ctx, providerID, dayStart, dayEnd, s.holdTTL)
	if err != nil {
		return nil, err
	}

	now := s.now()
	duration := time.Duration(durationMinutes) * time.Minute

	slots := GenerateSlots(blocks, providerID, dayStart, duration, now)
	return MarkConflicts(slots, bookings, now, s.holdTTL), nil
}

// ClientCalendar returns the raw pair the booking UI consumes when it
// computes slots itself: the provider's blocks and the occupied intervals.
func (s *Service) ClientCalendar(ctx context.Context, providerID int64) ([]domain.AvailabilityBlock, []ExistingBooking, error) {
	if providerID <= 0 {
		return nil, nil, ErrValidation
	}

	blocks, err := s.blocks.ListByProvider(ctx, providerID, "")
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	bookings, err := s.bookings.ListActiveForProvider(ctx, providerID, now, now.AddDate(0, 3, 0), s.holdTTL)
	if err != nil {
		return nil, nil, err
	}

	existing := make([]ExistingBooking, 0, len(bookings))
	for _, b := range bookings {
		existing = append(existing, ExistingBooking{Start: b.ScheduledAt, End: b.EndsAt()})
	}
	return blocks, existing, nil
}

func blockFromRequest(providerID int64, req CreateBlockRequest) (*domain.AvailabilityBlock, error) {
	b := &domain.AvailabilityBlock{
		ProviderID:  providerID,
		BlockType:   domain.BlockType(req.BlockType),
		Recurrence:  domain.Recurrence(req.Recurrence),
		StartHour:   req.StartHour,
		StartMinute: req.StartMinute,
		EndHour:     req.EndHour,
		EndMinute:   req.EndMinute,
	}

	switch b.Recurrence {
	case domain.RecurrenceWeekly:
		if req.DayOfWeek == nil {
			return nil, ErrValidation
		}
		b.DayOfWeek = *req.DayOfWeek
	case domain.RecurrenceOneOff:
		if req.Date == nil {
			return nil, ErrValidation
		}
		d, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, ErrValidation
		}
		b.Date = &d
		b.DayOfWeek = int(d.Weekday())
	default:
		return nil, ErrValidation
	}

	if !b.Valid() {
		return nil, ErrValidation
	}
	return b, nil
}
