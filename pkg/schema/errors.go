package schema

import "errors"

var (
	ErrNilField         = errors.New("schema: nil field")
	ErrEmptyKey         = errors.New("schema: field key is empty")
	ErrDuplicateKey     = errors.New("schema: duplicate field key")
	ErrInvalidBounds    = errors.New("schema: invalid bounds")
	ErrMaxDepthExceeded = errors.New("schema: maximum nesting depth exceeded")
	ErrCheckTimeout     = errors.New("schema: custom check timed out")
	ErrCheckFailed      = errors.New("schema: custom check failed")
	ErrUnknownFormat    = errors.New("schema: unknown format")
)

// Code classifies a validation failure.
type Code string

const (
	CodeRequired Code = "required"
	CodeType     Code = "type"
	CodeRange    Code = "range"
	CodeInteger  Code = "integer"
	CodeOption   Code = "option"
	CodeLength   Code = "length"
	CodeFormat   Code = "format"
	CodeCheck    Code = "check"
)

// ValidationError reports the first rule a record breaks. Error returns the
// human readable reason unchanged.
type ValidationError struct {
	// Field is the path of the offending field, e.g. "address.city" or
	// "tags[1]".
	Field  string
	Code   Code
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// AsValidationError unwraps err into a *ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
