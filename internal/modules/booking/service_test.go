package booking

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"fitbook/internal/domain"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) HasConflict(ctx context.Context, providerID int64, start, end time.Time, holdTTL time.Duration) (bool, error) {
	args := m.Called(ctx, providerID, start, end, holdTTL)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) ListByProvider(ctx context.Context, providerID int64, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, providerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByClient(ctx context.Context, clientID int64, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, clientID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBookingRepository) CancelWithReason(ctx context.Context, id int64, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

type MockServiceReader struct {
	mock.Mock
}

func (m *MockServiceReader) GetByID(ctx context.Context, id int64) (*domain.TrainingService, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrainingService), args.Error(1)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) NotifyBookingCreated(ctx context.Context, providerID, bookingID, clientID int64, start time.Time) error {
	args := m.Called(ctx, providerID, bookingID, clientID, start)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifyBookingConfirmed(ctx context.Context, clientID, bookingID int64) error {
	args := m.Called(ctx, clientID, bookingID)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifyBookingCancelled(ctx context.Context, clientID, bookingID int64, reason string) error {
	args := m.Called(ctx, clientID, bookingID, reason)
	return args.Error(0)
}

var testNow = time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC)

func newTestService(repo *MockBookingRepository, services *MockServiceReader) *Service {
	svc := NewService(repo, services, nil)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestCreateBooking_Succeeds(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("HasConflict", mock.Anything, int64(1), mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)

	svc := newTestService(repo, new(MockServiceReader))

	b, err := svc.CreateBooking(context.Background(), 10, CreateBookingRequest{
		ProviderID:      1,
		ScheduledAt:     testNow.Add(2 * time.Hour),
		DurationMinutes: 60,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	assert.Equal(t, int64(10), b.ClientID)
	repo.AssertExpectations(t)
}

func TestCreateBooking_SoftHold(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("HasConflict", mock.Anything, int64(1), mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)

	svc := newTestService(repo, new(MockServiceReader))

	b, err := svc.CreateBooking(context.Background(), 10, CreateBookingRequest{
		ProviderID:      1,
		ScheduledAt:     testNow.Add(2 * time.Hour),
		DurationMinutes: 30,
		SoftHold:        true,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingSoftHold, b.Status)
}

func TestCreateBooking_PastTimeRejected(t *testing.T) {
	svc := newTestService(new(MockBookingRepository), new(MockServiceReader))

	_, err := svc.CreateBooking(context.Background(), 10, CreateBookingRequest{
		ProviderID:      1,
		ScheduledAt:     testNow.Add(-time.Hour),
		DurationMinutes: 60,
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateBooking_Conflict(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("HasConflict", mock.Anything, int64(1), mock.Anything, mock.Anything, mock.Anything).Return(true, nil)

	svc := newTestService(repo, new(MockServiceReader))

	_, err := svc.CreateBooking(context.Background(), 10, CreateBookingRequest{
		ProviderID:      1,
		ScheduledAt:     testNow.Add(2 * time.Hour),
		DurationMinutes: 60,
	})

	assert.ErrorIs(t, err, ErrNotAvailable)
	repo.AssertNotCalled(t, "Create")
}

func TestCreateBooking_ServiceResolvesDuration(t *testing.T) {
	serviceID := int64(4)

	services := new(MockServiceReader)
	services.On("GetByID", mock.Anything, serviceID).Return(&domain.TrainingService{
		ID:              serviceID,
		ProviderID:      1,
		DurationMinutes: 90,
		Active:          true,
	}, nil)

	repo := new(MockBookingRepository)
	repo.On("HasConflict", mock.Anything, int64(1), mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)

	svc := newTestService(repo, services)

	b, err := svc.CreateBooking(context.Background(), 10, CreateBookingRequest{
		ProviderID:  1,
		ServiceID:   &serviceID,
		ScheduledAt: testNow.Add(2 * time.Hour),
	})

	assert.NoError(t, err)
	assert.Equal(t, 90, b.DurationMinutes)
}

func TestCreateBooking_ServiceFromOtherProviderRejected(t *testing.T) {
	serviceID := int64(4)

	services := new(MockServiceReader)
	services.On("GetByID", mock.Anything, serviceID).Return(&domain.TrainingService{
		ID:              serviceID,
		ProviderID:      2,
		DurationMinutes: 60,
		Active:          true,
	}, nil)

	svc := newTestService(new(MockBookingRepository), services)

	_, err := svc.CreateBooking(context.Background(), 10, CreateBookingRequest{
		ProviderID:  1,
		ServiceID:   &serviceID,
		ScheduledAt: testNow.Add(2 * time.Hour),
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateBooking_UniqueIndexMapsToOverbooking(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("HasConflict", mock.Anything, int64(1), mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(&pgconn.PgError{
		Code:           "23505",
		ConstraintName: "idx_no_double_booking",
	})

	svc := newTestService(repo, new(MockServiceReader))

	_, err := svc.CreateBooking(context.Background(), 10, CreateBookingRequest{
		ProviderID:      1,
		ScheduledAt:     testNow.Add(2 * time.Hour),
		DurationMinutes: 60,
	})

	assert.ErrorIs(t, err, ErrOverbooking)
}

func TestUpdateStatus_ProviderDrivesMachine(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Booking{
		ID:         5,
		ProviderID: 1,
		ClientID:   10,
		Status:     domain.BookingSoftHold,
	}, nil)
	repo.On("UpdateStatus", mock.Anything, int64(5), "confirmed").Return(nil)

	svc := newTestService(repo, new(MockServiceReader))

	_, err := svc.UpdateStatus(context.Background(), 5, 1, "confirmed")
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateStatus_ForbiddenForNonOwner(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Booking{
		ID:         5,
		ProviderID: 1,
		Status:     domain.BookingSoftHold,
	}, nil)

	svc := newTestService(repo, new(MockServiceReader))

	_, err := svc.UpdateStatus(context.Background(), 5, 99, "confirmed")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateStatus_IllegalTransition(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Booking{
		ID:         5,
		ProviderID: 1,
		Status:     domain.BookingCompleted,
	}, nil)

	svc := newTestService(repo, new(MockServiceReader))

	_, err := svc.UpdateStatus(context.Background(), 5, 1, "confirmed")
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	repo.AssertNotCalled(t, "UpdateStatus")
}

func TestCancel_RequiresReason(t *testing.T) {
	svc := newTestService(new(MockBookingRepository), new(MockServiceReader))

	_, err := svc.Cancel(context.Background(), 5, 1, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCancel_EitherPartyAllowed(t *testing.T) {
	for _, actorID := range []int64{1, 10} {
		repo := new(MockBookingRepository)
		repo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Booking{
			ID:         5,
			ProviderID: 1,
			ClientID:   10,
			Status:     domain.BookingConfirmed,
		}, nil)
		repo.On("CancelWithReason", mock.Anything, int64(5), "sick").Return(nil)

		svc := newTestService(repo, new(MockServiceReader))

		_, err := svc.Cancel(context.Background(), 5, actorID, "sick")
		assert.NoError(t, err)
	}
}

func TestCancel_StrangerForbidden(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Booking{
		ID:         5,
		ProviderID: 1,
		ClientID:   10,
		Status:     domain.BookingConfirmed,
	}, nil)

	svc := newTestService(repo, new(MockServiceReader))

	_, err := svc.Cancel(context.Background(), 5, 42, "sick")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListForUser_RoleSelectsView(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("ListByProvider", mock.Anything, int64(1), 20, 0).Return([]domain.Booking{}, nil)
	repo.On("ListByClient", mock.Anything, int64(1), 20, 0).Return([]domain.Booking{}, nil)

	svc := newTestService(repo, new(MockServiceReader))

	_, err := svc.ListForUser(context.Background(), 1, domain.RoleProvider, 0, 0)
	assert.NoError(t, err)
	repo.AssertCalled(t, "ListByProvider", mock.Anything, int64(1), 20, 0)

	_, err = svc.ListForUser(context.Background(), 1, domain.RoleClient, 0, 0)
	assert.NoError(t, err)
	repo.AssertCalled(t, "ListByClient", mock.Anything, int64(1), 20, 0)
}
