package schema

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/schemakit/pkg/format"
)

const (
	DefaultMaxDepth     = 32
	DefaultCheckTimeout = 5 * time.Second
)

// Config holds the environment-tunable validator settings.
type Config struct {
	MaxDepth         int           `env:"SCHEMA_MAX_DEPTH" envDefault:"32"`
	CheckTimeout     time.Duration `env:"SCHEMA_CHECK_TIMEOUT" envDefault:"5s"`
	LegacyPresence   bool          `env:"SCHEMA_LEGACY_PRESENCE" envDefault:"false"`
	NormalizeUnicode bool          `env:"SCHEMA_NORMALIZE_UNICODE" envDefault:"true"`
}

// Option configures a Validator.
type Option func(*Validator)

// WithConfig applies every setting of cfg. A non-positive depth leaves the
// default in place; CheckTimeout is applied as is, so zero disables the
// bound like WithCheckTimeout(0).
func WithConfig(cfg Config) Option {
	return func(v *Validator) {
		if cfg.MaxDepth > 0 {
			v.maxDepth = cfg.MaxDepth
		}
		v.checkTimeout = cfg.CheckTimeout
		v.legacy = cfg.LegacyPresence
		v.normalize = cfg.NormalizeUnicode
	}
}

// WithName sets the schema name used in log records and metrics.
func WithName(name string) Option {
	return func(v *Validator) {
		v.name = name
	}
}

// WithLegacyPresence switches the presence pass to the legacy rules:
// falsy values count as missing, falsy defaults are ignored, the first
// defaulted required field ends the pass and an absent optional field
// accepts the whole level.
func WithLegacyPresence() Option {
	return func(v *Validator) {
		v.legacy = true
	}
}

// WithCheckTimeout bounds every custom check. Zero or negative disables
// the bound.
func WithCheckTimeout(d time.Duration) Option {
	return func(v *Validator) {
		v.checkTimeout = d
	}
}

// WithMaxDepth limits how deep objects and arrays may nest.
func WithMaxDepth(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.maxDepth = n
		}
	}
}

// WithoutNormalization counts string length in code points without NFC
// normalisation.
func WithoutNormalization() Option {
	return func(v *Validator) {
		v.normalize = false
	}
}

// WithFormats replaces the format registry.
func WithFormats(r *format.Registry) Option {
	return func(v *Validator) {
		if r != nil {
			v.formats = r
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(v *Validator) {
		if o != nil {
			v.observer = o
		}
	}
}

// DefaultConfig returns the settings a Validator uses without options.
func DefaultConfig() Config {
	return Config{
		MaxDepth:         DefaultMaxDepth,
		CheckTimeout:     DefaultCheckTimeout,
		NormalizeUnicode: true,
	}
}
