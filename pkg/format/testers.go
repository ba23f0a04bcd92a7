package format

import (
	"net/netip"
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

var (
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,16}$`)
	passwordRegex = regexp.MustCompile(`^[a-zA-Z0-9]{8,}$`)
	phoneRegex    = regexp.MustCompile(`^\d{10}$`)
	pathRegex     = regexp.MustCompile(`^/(?:[a-zA-Z0-9_]+/)?[a-zA-Z0-9_]*$`)
	colorRegex    = regexp.MustCompile(`^#?[0-9a-fA-F]{3}([0-9a-fA-F]{3})?$`)
	timeRegex     = regexp.MustCompile(`^(?:[01]\d|2[0-3]):(?:00|30)$`)
	clockRegex    = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
	cronRegex     = regexp.MustCompile(`^(\*|[0-9]{1,2}|\*/[0-9]{1,2})( (\*|[0-9]{1,2}|\*/[0-9]{1,2})){4}$`)
)

// IsEmail reports whether s looks like local@domain.tld.
func IsEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// IsUsername reports whether s is 3 to 16 characters of [a-zA-Z0-9_].
func IsUsername(s string) bool {
	return usernameRegex.MatchString(s)
}

// IsStrongPassword reports whether s is at least 8 alphanumeric characters
// containing a lowercase letter, an uppercase letter and a digit.
func IsStrongPassword(s string) bool {
	if !passwordRegex.MatchString(s) {
		return false
	}

	var lower, upper, digit bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

// IsPhoneNumber reports whether s is exactly ten digits.
func IsPhoneNumber(s string) bool {
	return phoneRegex.MatchString(s)
}

// IsIPv4 reports whether s is a dotted-quad IPv4 address.
// Zones and IPv4-mapped IPv6 forms are rejected.
func IsIPv4(s string) bool {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return false
	}
	return addr.Is4() && addr.Zone() == ""
}

// IsURL reports whether s is an absolute URL with a scheme and host that
// round-trips unchanged through parsing. Relative references fail.
func IsURL(s string) bool {
	if strings.TrimSpace(s) != s || s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme == "" || u.Host == "" {
		return false
	}
	return u.String() == s
}

// IsImage reports whether s is a valid image reference. Images are
// referenced by absolute URL, so it accepts exactly what IsURL accepts.
func IsImage(s string) bool {
	return IsURL(s)
}

// IsPath reports whether s is an absolute path of at most two word segments,
// for example "/", "/users" or "/users/list".
func IsPath(s string) bool {
	return pathRegex.MatchString(s)
}

// IsColor reports whether s is a hex color with a leading '#'.
// Whitespace is ignored.
func IsColor(s string) bool {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	return colorRegex.MatchString(cleaned) && strings.HasPrefix(cleaned, "#")
}

// IsCron reports whether s is a five-field cron expression made of '*',
// one or two digit numbers or '*/n' steps.
func IsCron(s string) bool {
	return cronRegex.MatchString(s)
}

// IsHalfHour reports whether s is a HH:MM time on the hour or half hour.
func IsHalfHour(s string) bool {
	return timeRegex.MatchString(s)
}

// TimeToCron converts a HH:MM time into a daily cron expression, for example
// "09:05" into "5 9 * * *". It reports false for anything but a valid
// 24-hour time.
func TimeToCron(s string) (string, bool) {
	m := clockRegex.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return trimZeros(m[2]) + " " + trimZeros(m[1]) + " * * *", true
}

func trimZeros(s string) string {
	if t := strings.TrimLeft(s, "0"); t != "" {
		return t
	}
	return "0"
}
