package domain

import "time"

// OutcomeKind classifies a single validation attempt.
type OutcomeKind string

const (
	// OutcomeAbsent means the page confirmed the account does not exist.
	OutcomeAbsent OutcomeKind = "absent"
	// OutcomePresent means the page rendered the account's title.
	OutcomePresent OutcomeKind = "present"
	// OutcomeIndefinite means neither signal appeared within its timeout.
	OutcomeIndefinite OutcomeKind = "indefinite"
	// OutcomeFaulted means the probe itself failed (navigation, driver, DOM).
	OutcomeFaulted OutcomeKind = "faulted"
)

// AttemptOutcome is the value produced by one probe attempt. It is data,
// not control flow: faults and timeouts arrive here as kinds, never as errors.
type AttemptOutcome struct {
	Kind     OutcomeKind   `json:"kind"`
	Observed string        `json:"observed,omitempty"` // marker text or title
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Definitive reports whether the outcome stops retries.
func (o AttemptOutcome) Definitive() bool {
	return o.Kind == OutcomeAbsent || o.Kind == OutcomePresent
}
