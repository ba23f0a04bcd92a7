package checks

import "errors"

var (
	ErrMissingArgument = errors.New("checks: missing argument")
	ErrUnknownCheck    = errors.New("checks: unknown check")
	ErrLookupFailed    = errors.New("checks: lookup failed")
)
