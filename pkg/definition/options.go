package definition

import (
	"github.com/dmitrymomot/schemakit/pkg/checks"
	"github.com/dmitrymomot/schemakit/pkg/format"
	"github.com/dmitrymomot/schemakit/pkg/schema"
)

// Option configures parsing.
type Option func(*parser)

// WithCheck appends c to the checks of the field at path. Paths join object
// keys with dots and address array items with "[]", e.g. "address.city" or
// "tags[]".
func WithCheck(path string, c schema.Check) Option {
	return func(p *parser) {
		p.attached[path] = append(p.attached[path], c)
	}
}

// WithFactories resolves the named checks of a document.
func WithFactories(f checks.Factories) Option {
	return func(p *parser) {
		p.factories = p.factories.Merge(f)
	}
}

// WithFormats sets the registry format names are validated against.
func WithFormats(r *format.Registry) Option {
	return func(p *parser) {
		if r != nil {
			p.formats = r
		}
	}
}
