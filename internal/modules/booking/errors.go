package booking

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrNotFound                = errors.New("booking not found")
	ErrForbidden               = errors.New("forbidden")
	ErrNotAvailable            = errors.New("slot not available")
	ErrOverbooking             = errors.New("double-booking constraint violation")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
