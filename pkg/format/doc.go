// Package format holds the atomic string testers the schema engine calls into
// when a string field declares a format, together with a Registry that maps a
// format name to its tester and failure message.
//
// Testers are pure functions of a single string. They never allocate shared
// state and are safe to call from any goroutine.
//
// # Built-in formats
//
//   - email            – local@domain.tld, no whitespace
//   - username         – 3 to 16 letters, digits or underscores
//   - passwordStrength – 8+ alphanumerics with lower, upper and digit
//   - phoneNumber      – exactly ten digits
//   - ipAddress        – dotted-quad IPv4, no leading zeros
//   - url              – absolute URL in canonical form
//   - path             – one or two slash separated word segments
//   - image            – same as url
//   - color, cron, time
//
// TimeToCron turns a HH:MM time into the matching daily cron expression.
//
// # Usage
//
//	reg := format.NewRegistry()
//	reg.Register("slug", isSlug, "must be a valid slug")
//
//	if entry, ok := reg.Lookup(format.Email); ok && !entry.Test(value) {
//	    // report entry.Message
//	}
package format
