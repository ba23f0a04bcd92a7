package schema

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/schemakit/pkg/format"
	"github.com/dmitrymomot/schemakit/pkg/logger"
)

// Validator checks records against a Schema. It is safe for concurrent use;
// the schema and the input records are never modified.
type Validator struct {
	schema       *Schema
	root         []entry
	name         string
	legacy       bool
	normalize    bool
	maxDepth     int
	checkTimeout time.Duration
	formats      *format.Registry
	logger       *slog.Logger
	observer     Observer
}

// entry is a field bound to its location inside the record being checked.
type entry struct {
	key   string
	name  string
	path  string
	field Field
}

// NewValidator returns a validator for s.
func NewValidator(s *Schema, opts ...Option) *Validator {
	v := &Validator{
		schema:       s,
		normalize:    true,
		maxDepth:     DefaultMaxDepth,
		checkTimeout: DefaultCheckTimeout,
		formats:      format.NewRegistry(),
		logger:       logger.Nop(),
		observer:     nopObserver{},
	}
	for _, opt := range opts {
		opt(v)
	}
	v.root = entriesOf(s, "")
	return v
}

// Validate runs the presence, type and constraint passes over a copy of
// record and returns the copy with defaults filled in. A broken rule is
// reported as *ValidationError; any other error means validation could not
// finish.
func Validate(ctx context.Context, s *Schema, record map[string]any) (map[string]any, error) {
	return NewValidator(s).Validate(ctx, record)
}

// Schema returns the schema the validator checks against.
func (v *Validator) Schema() *Schema { return v.schema }

// Name returns the configured schema name.
func (v *Validator) Name() string { return v.name }

// Validate runs the presence, type and constraint passes over a copy of
// record and returns the copy with defaults filled in.
func (v *Validator) Validate(ctx context.Context, record map[string]any) (map[string]any, error) {
	start := time.Now()
	out := cloneRecord(record)

	fe, err := v.validateLevel(ctx, out, v.root, 0)
	elapsed := time.Since(start)

	switch {
	case err != nil:
		v.observer.ObserveValidation(v.name, OutcomeError, elapsed)
		v.logger.WarnContext(ctx, "validation aborted",
			logger.Schema(v.name),
			logger.Duration(elapsed),
			logger.Error(err),
		)
		return nil, err
	case fe != nil:
		v.observer.ObserveValidation(v.name, OutcomeInvalid, elapsed)
		v.logger.DebugContext(ctx, "record rejected",
			logger.Schema(v.name),
			logger.Field(fe.Field),
			logger.Code(string(fe.Code)),
			logger.Reason(fe.Reason),
			logger.Duration(elapsed),
		)
		return nil, fe
	default:
		v.observer.ObserveValidation(v.name, OutcomeValid, elapsed)
		v.logger.DebugContext(ctx, "record accepted",
			logger.Schema(v.name),
			logger.Duration(elapsed),
		)
		return out, nil
	}
}

// Reason validates record and returns the failure message, or "" when the
// record is valid.
func (v *Validator) Reason(ctx context.Context, record map[string]any) (string, error) {
	_, err := v.Validate(ctx, record)
	if err == nil {
		return "", nil
	}
	if ve, ok := AsValidationError(err); ok {
		return ve.Reason, nil
	}
	return "", err
}

func entriesOf(s *Schema, prefix string) []entry {
	if s == nil {
		return nil
	}
	out := make([]entry, len(s.fields))
	for i, f := range s.fields {
		b := f.common()
		path := b.Key
		if prefix != "" {
			path = prefix + "." + b.Key
		}
		out[i] = entry{key: b.Key, name: b.DisplayName(), path: path, field: f}
	}
	return out
}

func fail(e entry, code Code, reason string) *ValidationError {
	return &ValidationError{Field: e.path, Code: code, Reason: reason}
}

// validateLevel checks one record against its entries, mutating record with
// defaults. Only the first failure is returned.
func (v *Validator) validateLevel(ctx context.Context, record map[string]any, entries []entry, depth int) (*ValidationError, error) {
	if depth > v.maxDepth {
		return nil, fmt.Errorf("%w: depth %d, limit %d", ErrMaxDepthExceeded, depth, v.maxDepth)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		skip []bool
		fe   *ValidationError
		done bool
	)
	if v.legacy {
		skip = make([]bool, len(entries))
		fe, done = legacyPresence(record, entries)
	} else {
		skip, fe = presence(record, entries)
	}
	if fe != nil || done {
		return fe, nil
	}

	for i, e := range entries {
		if skip[i] {
			continue
		}
		want := e.field.Kind()
		if runtimeKind(record[e.key]) != want.runtime() {
			return fail(e, CodeType, msgType(e.name, want)), nil
		}
	}

	for i, e := range entries {
		if skip[i] {
			continue
		}
		if fe, err := v.constrain(ctx, e, record, depth); fe != nil || err != nil {
			if err != nil {
				v.logger.DebugContext(ctx, "field check aborted",
					logger.Schema(v.name),
					logger.Field(e.path),
					logger.Depth(depth),
					logger.Error(err),
				)
			}
			return fe, err
		}
	}
	return nil, nil
}

// presence fills defaults for absent keys and rejects absent required keys.
// A key is absent when it is missing or nil. Defaulted and absent optional
// fields are marked to be skipped by the later passes.
func presence(record map[string]any, entries []entry) ([]bool, *ValidationError) {
	skip := make([]bool, len(entries))
	for i, e := range entries {
		if val, ok := record[e.key]; ok && val != nil {
			continue
		}
		b := e.field.common()
		switch {
		case b.Default != nil:
			record[e.key] = cloneValue(b.Default)
			skip[i] = true
		case b.Required:
			return nil, fail(e, CodeRequired, msgRequired(e.name))
		default:
			skip[i] = true
		}
	}
	return skip, nil
}

// legacyPresence applies the legacy presence rules. done reports that
// the level is accepted without running the remaining passes.
func legacyPresence(record map[string]any, entries []entry) (fe *ValidationError, done bool) {
	for _, e := range entries {
		b := e.field.common()
		missing := isFalsy(record[e.key])
		hasDefault := !isFalsy(b.Default)

		if b.Required {
			if missing && hasDefault {
				record[e.key] = cloneValue(b.Default)
				return nil, false
			}
			if missing {
				return fail(e, CodeRequired, msgRequired(e.name)), false
			}
			continue
		}
		if missing {
			if hasDefault {
				record[e.key] = cloneValue(b.Default)
			}
			return nil, true
		}
	}
	return nil, false
}

// runChecks awaits each custom check of e in order, stopping at the first
// that rejects the value.
func (v *Validator) runChecks(ctx context.Context, e entry, val any) (*ValidationError, error) {
	for _, c := range e.field.common().Checks {
		if c.Func == nil {
			continue
		}
		start := time.Now()
		ok, err := awaitCheck(ctx, c.Func, e.key, val, v.checkTimeout)
		elapsed := time.Since(start)

		if err != nil {
			v.observer.ObserveCheck(v.name, OutcomeError, elapsed)
			switch {
			case errors.Is(err, errCheckTimeout):
				return nil, fmt.Errorf("%w: field %q after %s", ErrCheckTimeout, e.path, v.checkTimeout)
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				return nil, err
			default:
				return nil, fmt.Errorf("%w: field %q: %w", ErrCheckFailed, e.path, err)
			}
		}
		if !ok {
			v.observer.ObserveCheck(v.name, OutcomeInvalid, elapsed)
			return fail(e, CodeCheck, msgCheck(c.Message)), nil
		}
		v.observer.ObserveCheck(v.name, OutcomeValid, elapsed)
	}
	return nil, nil
}
