package cwa

import "errors"

var (
	ErrMissingPayload = errors.New("selection has no fields for its hazard")
	ErrNoVORs         = errors.New("no VORs drawn")
)

// ValidationError is a problem with the forecaster's selections. No product
// text is produced when one is returned.
type ValidationError struct {
	Title   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Title + ": " + e.Message
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
