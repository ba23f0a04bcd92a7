package schema

import "time"

// Outcome is the result class of a validation or a custom check.
type Outcome string

const (
	OutcomeValid   Outcome = "valid"
	OutcomeInvalid Outcome = "invalid"
	OutcomeError   Outcome = "error"
)

// Observer receives timing events from a Validator.
type Observer interface {
	ObserveValidation(schema string, outcome Outcome, d time.Duration)
	ObserveCheck(schema string, outcome Outcome, d time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveValidation(string, Outcome, time.Duration) {}
func (nopObserver) ObserveCheck(string, Outcome, time.Duration)      {}
