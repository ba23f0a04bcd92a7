package format

import "errors"

var (
	// ErrEmptyFormat is returned when registering a tester without a name.
	ErrEmptyFormat = errors.New("format: empty format name")

	// ErrNilTester is returned when registering a nil tester.
	ErrNilTester = errors.New("format: nil tester")
)
