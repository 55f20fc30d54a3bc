package repository

import (
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every table the repositories
// own, plus the partial unique index that closes the double-booking race:
// two active bookings can never share (provider_id, scheduled_at).
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel{},
		&trainingServiceModel{},
		&availabilityBlockModel{},
		&bookingModel{},
		&bookingRequestModel{},
		&notificationModel{},
	); err != nil {
		return err
	}

	// same predicate syntax on postgres and sqlite
	return db.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_no_double_booking
ON bookings (provider_id, scheduled_at)
WHERE status IN ('soft_hold', 'confirmed')
`).Error
}
