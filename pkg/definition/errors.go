package definition

import "errors"

var (
	ErrInvalidDefinition = errors.New("definition: invalid document")
	ErrUnknownKey        = errors.New("definition: unknown key")
	ErrUnknownType       = errors.New("definition: unknown field type")
	ErrUnknownFormat     = errors.New("definition: unknown format")
	ErrUnknownPath       = errors.New("definition: check attached to unknown field")
	ErrDuplicateName     = errors.New("definition: duplicate schema name")
	ErrNoDefinitions     = errors.New("definition: no definition files found")
)
