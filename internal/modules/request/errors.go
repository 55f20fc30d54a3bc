package request

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrNotFound                = errors.New("booking request not found")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidStateTransition  = errors.New("invalid state transition")
	ErrTimeNotPreferred        = errors.New("chosen time is not among the preferred times")
	ErrBookingCreationConflict = errors.New("booking creation conflicted with an existing booking")
)
