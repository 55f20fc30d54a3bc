package availability

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("availability block not found")
	ErrForbidden  = errors.New("not the calendar owner")
)
