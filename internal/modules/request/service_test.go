package request

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"fitbook/internal/domain"
)

type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Create(ctx context.Context, req *domain.BookingRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockRequestRepository) GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingRequest), args.Error(1)
}

func (m *MockRequestRepository) List(ctx context.Context, providerID, clientID int64, status string) ([]domain.BookingRequest, error) {
	args := m.Called(ctx, providerID, clientID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingRequest), args.Error(1)
}

func (m *MockRequestRepository) UpdateStatusFrom(ctx context.Context, id int64, from, to string) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockRequestRepository) AcceptWithBooking(ctx context.Context, id int64, chosenTime time.Time, b *domain.Booking) error {
	args := m.Called(ctx, id, chosenTime, b)
	return args.Error(0)
}

func (m *MockRequestRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRequestRepository) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
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

var testNow = time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC)

func newTestService(repo *MockRequestRepository, services *MockServiceReader, cfg Config) *Service {
	svc := NewService(repo, services, nil, cfg)
	svc.now = func() time.Time { return testNow }
	return svc
}

func pendingRequest(id, providerID, clientID int64) *domain.BookingRequest {
	return &domain.BookingRequest{
		ID:             id,
		Reference:      "ref-abc",
		ProviderID:     providerID,
		ClientID:       clientID,
		PreferredTimes: []time.Time{testNow.Add(24 * time.Hour), testNow.Add(26 * time.Hour)},
		Status:         domain.RequestPending,
		ExpiresAt:      testNow.Add(domain.DefaultRequestTTL),
		CreatedAt:      testNow,
	}
}

func TestCreate_DefaultsExpiryAndReference(t *testing.T) {
	repo := new(MockRequestRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.BookingRequest")).Return(nil)

	svc := newTestService(repo, new(MockServiceReader), Config{})

	r, err := svc.Create(context.Background(), 10, domain.RoleClient, CreateRequest{
		ProviderID:     1,
		PreferredTimes: []time.Time{testNow.Add(24 * time.Hour)},
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, r.Reference)
	assert.Equal(t, domain.RequestPending, r.Status)
	assert.Equal(t, testNow.Add(48*time.Hour), r.ExpiresAt)
	assert.Equal(t, int64(10), r.ClientID) // clients always file for themselves
}

func TestCreate_RequiresPreferredTimes(t *testing.T) {
	svc := newTestService(new(MockRequestRepository), new(MockServiceReader), Config{})

	_, err := svc.Create(context.Background(), 10, domain.RoleClient, CreateRequest{ProviderID: 1})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreate_ProviderFilesOnBehalfOfClient(t *testing.T) {
	repo := new(MockRequestRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.BookingRequest")).Return(nil)

	svc := newTestService(repo, new(MockServiceReader), Config{})

	r, err := svc.Create(context.Background(), 1, domain.RoleProvider, CreateRequest{
		ProviderID:     1,
		ClientID:       10,
		PreferredTimes: []time.Time{testNow.Add(24 * time.Hour)},
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(10), r.ClientID)
}

func TestList_FoldsExpiryAtReadTime(t *testing.T) {
	overdue := *pendingRequest(1, 1, 10)
	overdue.ExpiresAt = testNow.Add(-time.Hour) // created 49h ago with a 48h TTL

	fresh := *pendingRequest(2, 1, 10)

	repo := new(MockRequestRepository)
	repo.On("List", mock.Anything, int64(1), int64(0), "").Return([]domain.BookingRequest{overdue, fresh}, nil)

	svc := newTestService(repo, new(MockServiceReader), Config{})

	list, err := svc.List(context.Background(), 1, domain.RoleProvider, "")
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, domain.RequestExpired, list[0].Status)
	assert.Equal(t, domain.RequestPending, list[1].Status)
}

func TestList_StatusFilterAppliesAfterExpiryFold(t *testing.T) {
	overdue := *pendingRequest(1, 1, 10)
	overdue.ExpiresAt = testNow.Add(-time.Hour)

	repo := new(MockRequestRepository)
	repo.On("List", mock.Anything, int64(1), int64(0), "").Return([]domain.BookingRequest{overdue}, nil)

	svc := newTestService(repo, new(MockServiceReader), Config{})

	list, err := svc.List(context.Background(), 1, domain.RoleProvider, "pending")
	assert.NoError(t, err)
	assert.Empty(t, list) // stored as pending, reads as expired

	list, err = svc.List(context.Background(), 1, domain.RoleProvider, "expired")
	assert.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAccept_CreatesConfirmedBooking(t *testing.T) {
	r := pendingRequest(1, 1, 10)
	chosen := r.PreferredTimes[0]

	repo := new(MockRequestRepository)
	repo.On("GetByID", mock.Anything, int64(1)).Return(r, nil)
	repo.On("AcceptWithBooking", mock.Anything, int64(1), chosen, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Status == domain.BookingConfirmed &&
			b.ProviderID == 1 &&
			b.ClientID == 10 &&
			b.DurationMinutes == DefaultDurationMinutes &&
			b.ScheduledAt.Equal(chosen)
	})).Return(nil)

	svc := newTestService(repo, new(MockServiceReader), Config{})

	_, err := svc.Accept(context.Background(), 1, 1, chosen)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestAccept_ServiceDurationWins(t *testing.T) {
	r := pendingRequest(1, 1, 10)
	serviceID := int64(4)
	r.ServiceID = &serviceID
	chosen := r.PreferredTimes[0]

	services := new(MockServiceReader)
	services.On("GetByID", mock.Anything, serviceID).Return(&domain.TrainingService{
		ID:              serviceID,
		ProviderID:      1,
		DurationMinutes: 90,
	}, nil)

	repo := new(MockRequestRepository)
	repo.On("GetByID", mock.Anything, int64(1)).Return(r, nil)
	repo.On("AcceptWithBooking", mock.Anything, int64(1), chosen, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.DurationMinutes == 90
	})).Return(nil)

	svc := newTestService(repo, services, Config{})

	_, err := svc.Accept(context.Background(), 1, 1, chosen)
	assert.NoError(t, err)
}

func TestAccept_LosingTheRaceReadsAsInvalidTransition(t *testing.T) {
	r := pendingRequest(1, 1, 10)
	chosen := r.PreferredTimes[0]

	repo := new(MockRequestRepository)
	repo.On("GetByID", mock.Anything, int64(1)).Return(r, nil)
	repo.On("AcceptWithBooking", mock.Anything, int64(1), chosen, mock.Anything).Return(gorm.ErrRecordNotFound)

	svc := newTestService(repo, new(MockServiceReader), Config{})

	_, err := svc.Accept(context.Background(), 1, 1, chosen)
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
}

func TestAccept_SlotTakenByOutsideBooking(t *testing.T) {
	r := pendingRequest(1, 1, 10)
	chosen := r.PreferredTimes[0]

	repo := new(MockRequestRepository)
	repo.On("GetByID", mock.Anything, int64(1)).Return(r, nil)
	repo.On("AcceptWithBooking", mock.Anything, int64(1), chosen, mock.Anything).Return(&pgconn.PgError{
		Code:           "23505",
		ConstraintName: "idx_no_double_booking",
	})

	svc := newTestService(repo, new(MockServiceReader), Config{})

	_, err := svc.Accept(context.Background(), 1, 1, chosen)
	assert.ErrorIs(t, err, ErrBookingCreationConflict)
}

func TestAccept_ExpiredRequestRejected(t *testing.T) {
	r := pendingRequest(1, 1, 10)
	r.ExpiresAt = testNow.Add(-time.Minute)

	repo := new(MockRequestRepository)
	repo.On("GetByID", mock.Anything, int64(1)).Return(r, nil)

	svc := newTestService(repo, new(MockServiceReader), Config{})

	_, err := svc.Accept(context.Background(), 1, 1, r.PreferredTimes[0])
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
	repo.AssertNotCalled(t, "AcceptWithBooking")
}

func TestAccept_ChosenTimeOutsidePreferred(t *testing.T) {
	r := pendingRequest(1, 1, 10)
	counter := testNow.Add(30 * time.Hour)

	repo := new(MockRequestRepository)
	repo.On("GetByID", mock.Anything, int64(1)).Return(r, nil)

	// default config: any counter-proposed time is acceptable
	repo.On("AcceptWithBooking", mock.Anything, int64(1), counter, mock.Anything).Return(nil)
	svc := newTestService(repo, new(MockServiceReader), Config{})
	_, err := svc.Accept(context.Background(), 1, 1, counter)
	assert.NoError(t, err)

	// strict config rejects it
	strict := newTestService(repo, new(MockServiceReader), Config{RequireChosenPreferredTime: true})
	_, err = strict.Accept(context.Background(), 1, 1, counter)
	assert.ErrorIs(t, err, ErrTimeNotPreferred)
}

func TestAccept_ForbiddenForOtherProvider(t *testing.T) {
	r := pendingRequest(1, 1, 10)

	repo := new(MockRequestRepository)
	repo.On("GetByID", mock.Anything, int64(1)).Return(r, nil)

	svc := newTestService(repo, new(MockServiceReader), Config{})

	_, err := svc.Accept(context.Background(), 1, 99, r.PreferredTimes[0])
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDecline_FlipsPendingOnly(t *testing.T) {
	r := pendingRequest(1, 1, 10)

	repo := new(MockRequestRepository)
	repo.On("GetByID", mock.Anything, int64(1)).Return(r, nil)
	repo.On("UpdateStatusFrom", mock.Anything, int64(1), "pending", "declined").Return(true, nil)

	svc := newTestService(repo, new(MockServiceReader), Config{})

	_, err := svc.Decline(context.Background(), 1, 1)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDecline_AlreadyDecided(t *testing.T) {
	r := pendingRequest(1, 1, 10)
	r.Status = domain.RequestAccepted

	repo := new(MockRequestRepository)
	repo.On("GetByID", mock.Anything, int64(1)).Return(r, nil)

	svc := newTestService(repo, new(MockServiceReader), Config{})

	_, err := svc.Decline(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
	repo.AssertNotCalled(t, "UpdateStatusFrom")
}

func TestDecline_GuardedUpdateLosesRace(t *testing.T) {
	r := pendingRequest(1, 1, 10)

	repo := new(MockRequestRepository)
	repo.On("GetByID", mock.Anything, int64(1)).Return(r, nil)
	repo.On("UpdateStatusFrom", mock.Anything, int64(1), "pending", "declined").Return(false, nil)

	svc := newTestService(repo, new(MockServiceReader), Config{})

	_, err := svc.Decline(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
}

func TestDelete_PartiesAndAdminOnly(t *testing.T) {
	r := pendingRequest(1, 1, 10)

	repo := new(MockRequestRepository)
	repo.On("GetByID", mock.Anything, int64(1)).Return(r, nil)
	repo.On("Delete", mock.Anything, int64(1)).Return(nil)

	svc := newTestService(repo, new(MockServiceReader), Config{})

	assert.NoError(t, svc.Delete(context.Background(), 1, 10, domain.RoleClient))
	assert.NoError(t, svc.Delete(context.Background(), 1, 1, domain.RoleProvider))
	assert.NoError(t, svc.Delete(context.Background(), 1, 99, domain.RoleAdmin))
	assert.ErrorIs(t, svc.Delete(context.Background(), 1, 99, domain.RoleClient), ErrForbidden)
}

func TestSweepExpired_ReturnsRowCount(t *testing.T) {
	repo := new(MockRequestRepository)
	repo.On("MarkExpired", mock.Anything, testNow).Return(int64(3), nil)

	svc := newTestService(repo, new(MockServiceReader), Config{})

	n, err := svc.SweepExpired(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
