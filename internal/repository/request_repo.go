package repository

import (
	"context"
	"encoding/json"
	"time"

	"fitbook/internal/domain"

	"gorm.io/gorm"
)

type BookingRequestRepository struct {
	db *gorm.DB
}

func NewBookingRequestRepository(db *gorm.DB) *BookingRequestRepository {
	return &BookingRequestRepository{db: db}
}

type bookingRequestModel struct {
	ID             int64      `gorm:"column:id;primaryKey"`
	Reference      string     `gorm:"column:reference;uniqueIndex"`
	ProviderID     int64      `gorm:"column:provider_id;index"`
	ClientID       int64      `gorm:"column:client_id;index"`
	ServiceID      *int64     `gorm:"column:service_id"`
	PreferredTimes string     `gorm:"column:preferred_times;type:json"`
	Notes          *string    `gorm:"column:notes"`
	Status         string     `gorm:"column:status"`
	ExpiresAt      time.Time  `gorm:"column:expires_at"`
	AcceptedTime   *time.Time `gorm:"column:accepted_time"`
	BookingID      *int64     `gorm:"column:booking_id"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (bookingRequestModel) TableName() string { return "booking_requests" }

func toDomainRequest(m bookingRequestModel) (*domain.BookingRequest, error) {
	var times []time.Time
	if m.PreferredTimes != "" {
		if err := json.Unmarshal([]byte(m.PreferredTimes), &times); err != nil {
			return nil, err
		}
	}

	var notes string
	if m.Notes != nil {
		notes = *m.Notes
	}

	return &domain.BookingRequest{
		ID:             m.ID,
		Reference:      m.Reference,
		ProviderID:     m.ProviderID,
		ClientID:       m.ClientID,
		ServiceID:      m.ServiceID,
		PreferredTimes: times,
		Notes:          notes,
		Status:         domain.RequestStatus(m.Status),
		ExpiresAt:      m.ExpiresAt,
		AcceptedTime:   m.AcceptedTime,
		BookingID:      m.BookingID,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}, nil
}

func toRequestModel(r *domain.BookingRequest) (bookingRequestModel, error) {
	times, err := json.Marshal(r.PreferredTimes)
	if err != nil {
		return bookingRequestModel{}, err
	}

	var notes *string
	if r.Notes != "" {
		v := r.Notes
		notes = &v
	}

	return bookingRequestModel{
		ID:             r.ID,
		Reference:      r.Reference,
		ProviderID:     r.ProviderID,
		ClientID:       r.ClientID,
		ServiceID:      r.ServiceID,
		PreferredTimes: string(times),
		Notes:          notes,
		Status:         string(r.Status),
		ExpiresAt:      r.ExpiresAt,
		AcceptedTime:   r.AcceptedTime,
		BookingID:      r.BookingID,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}, nil
}

func (r *BookingRequestRepository) Create(ctx context.Context, req *domain.BookingRequest) error {
	m, err := toRequestModel(req)
	if err != nil {
		return err
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	out, err := toDomainRequest(m)
	if err != nil {
		return err
	}
	*req = *out
	return nil
}

func (r *BookingRequestRepository) GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error) {
	var m bookingRequestModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRequest(m)
}

func (r *BookingRequestRepository) List(ctx context.Context, providerID, clientID int64, status string) ([]domain.BookingRequest, error) {
	q := r.db.WithContext(ctx).Model(&bookingRequestModel{})
	if providerID > 0 {
		q = q.Where("provider_id = ?", providerID)
	}
	if clientID > 0 {
		q = q.Where("client_id = ?", clientID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var rows []bookingRequestModel
	tx := q.Order("created_at DESC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.BookingRequest, 0, len(rows))
	for _, m := range rows {
		req, err := toDomainRequest(m)
		if err != nil {
			return nil, err
		}
		out = append(out, *req)
	}
	return out, nil
}

// UpdateStatusFrom moves the request from one status to another and reports
// whether the row actually changed. The WHERE on the current status makes
// two racing accepts resolve to a single winner.
func (r *BookingRequestRepository) UpdateStatusFrom(ctx context.Context, id int64, from, to string) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&bookingRequestModel{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// AcceptWithBooking performs the accept transition atomically: insert the
// confirmed booking and flip the request inside one transaction. Guarding
// the flip on status=pending makes two racing accepts resolve to a single
// winner; a failed booking insert rolls everything back and the request
// stays pending.
func (r *BookingRequestRepository) AcceptWithBooking(ctx context.Context, id int64, chosenTime time.Time, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&bookingRequestModel{}).
			Where("id = ? AND status = ?", id, string(domain.RequestPending)).
			Update("status", string(domain.RequestAccepted))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		m := toBookingModel(b)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		*b = *toDomainBooking(m)

		return tx.Model(&bookingRequestModel{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"accepted_time": chosenTime,
				"booking_id":    m.ID,
			}).Error
	})
}

func (r *BookingRequestRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&bookingRequestModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkExpired persists the expired status on pending requests whose deadline
// has passed. Called by the sweeper; reads stay correct without it via
// EffectiveStatus.
func (r *BookingRequestRepository) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&bookingRequestModel{}).
		Where("status = ? AND expires_at < ?", string(domain.RequestPending), now).
		Update("status", string(domain.RequestExpired))
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}
