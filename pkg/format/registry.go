package format

import (
	"slices"
	"sync"
)

// Format names a string grammar a field may be tested against.
type Format string

// Built-in formats.
const (
	Email            Format = "email"
	Username         Format = "username"
	PasswordStrength Format = "passwordStrength"
	PhoneNumber      Format = "phoneNumber"
	IPAddress        Format = "ipAddress"
	URL              Format = "url"
	Path             Format = "path"
	Color            Format = "color"
	Cron             Format = "cron"
	Time             Format = "time"
	Image            Format = "image"
)

// Tester is a pure predicate over a string.
type Tester func(string) bool

// Entry pairs a tester with the message suffix reported on failure, for
// example "must be a valid email address".
type Entry struct {
	Test    Tester
	Message string
}

// Registry maps format names to testers. The zero value is not usable,
// create registries with NewRegistry.
type Registry struct {
	mu      sync.RWMutex
	entries map[Format]Entry
}

// NewRegistry returns a registry preloaded with the built-in formats.
func NewRegistry() *Registry {
	return &Registry{entries: builtins()}
}

func builtins() map[Format]Entry {
	return map[Format]Entry{
		Email:            {Test: IsEmail, Message: "must be a valid email address"},
		Username:         {Test: IsUsername, Message: "must be a valid username"},
		PasswordStrength: {Test: IsStrongPassword, Message: "is too weak to be a valid password"},
		PhoneNumber:      {Test: IsPhoneNumber, Message: "must be a valid phone number"},
		IPAddress:        {Test: IsIPv4, Message: "must be a valid IPv4 address"},
		URL:              {Test: IsURL, Message: "must be a valid URL"},
		Path:             {Test: IsPath, Message: "must be a valid path"},
		Color:            {Test: IsColor, Message: "must be a valid hex color"},
		Cron:             {Test: IsCron, Message: "must be a valid cron expression"},
		Time:             {Test: IsHalfHour, Message: "must be a valid time"},
		Image:            {Test: IsImage, Message: "must be a valid image URL"},
	}
}

// Register adds or replaces the tester for f.
func (r *Registry) Register(f Format, test Tester, message string) error {
	if f == "" {
		return ErrEmptyFormat
	}
	if test == nil {
		return ErrNilTester
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[f] = Entry{Test: test, Message: message}
	return nil
}

// Lookup returns the entry registered for f.
func (r *Registry) Lookup(f Format) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[f]
	return entry, ok
}

// Formats returns the registered format names in sorted order.
func (r *Registry) Formats() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Format, 0, len(r.entries))
	for f := range r.entries {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}
