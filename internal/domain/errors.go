package domain

import "errors"

// Error categories. Specific errors wrap one of these with fmt.Errorf("%w: ...")
// so callers can classify with errors.Is.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("authorization denied")
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
)
