// Package definition builds schemas from YAML or JSON documents.
//
// A document names the schema and lists its fields in order:
//
//	name: signup
//	fields:
//	  email:
//	    type: string
//	    name: Email
//	    required: true
//	    format: email
//	    checks:
//	      - use: postgres.unique
//	        args: {table: users, column: email}
//	        message: This email is already registered
//	  age: {type: integer, min: 13, max: 120}
//	  tags:
//	    type: array
//	    items: {type: string, max: 20}
//
// Field keys are type, name, description, required, default, min, max,
// options, format (or its alias test), items, properties and checks. Field
// order in the document is the validation order. Checks named with "use"
// are built through checks.Factories passed with WithFactories; Go checks
// can be attached by field path with WithCheck.
package definition
