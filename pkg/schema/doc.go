// Package schema validates loosely typed records against declarative
// field descriptors.
//
// A Schema is an ordered list of fields. Each field is one of StringField,
// NumberField, IntegerField, BooleanField, ObjectField or ArrayField and
// shares the attributes in Base: key, display name, required flag, default
// and custom checks.
//
// Validation of one record level runs three passes in field order:
//
//  1. presence fills defaults for absent keys and rejects absent required
//     keys;
//  2. type compares the coarse runtime kind of each value with the declared
//     kind;
//  3. constraints apply numeric bounds, integrality, options, length,
//     format testers and custom checks, then descend into objects and array
//     elements.
//
// The first failure ends validation and is returned as *ValidationError,
// whose Error method yields the human readable reason:
//
//	s := schema.MustNew(
//		&schema.StringField{Base: schema.Base{Key: "email", Name: "Email", Required: true}, Format: format.Email},
//		&schema.IntegerField{Base: schema.Base{Key: "age", Default: 18}, Min: schema.Float(0)},
//	)
//	out, err := schema.NewValidator(s).Validate(ctx, record)
//
// Validators never modify the schema or the input record; the returned
// record is a deep copy with defaults applied. Custom checks run one at a
// time, each bounded by the configured check timeout.
package schema
