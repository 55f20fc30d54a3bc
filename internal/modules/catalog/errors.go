package catalog

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("service not found")
	ErrForbidden  = errors.New("not the service owner")
)
