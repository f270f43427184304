package strategy

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hikewise/exitadvisor/internal/refdata"
)

var (
	// ErrMalformedResponse means no parseable strategy payload was found in
	// the model output. Fatal for the invocation; no partial result.
	ErrMalformedResponse = errors.New("no structured strategy payload found in response")

	// ErrNoValidStrategies means every candidate was rejected or the payload
	// was empty. The issue log is still returned alongside the error.
	ErrNoValidStrategies = errors.New("no valid exit strategies produced")
)

// RawCandidate is one unvalidated entry from the model payload, kept as raw
// JSON so a single malformed entry rejects on its own instead of failing the
// whole batch.
type RawCandidate = json.RawMessage

// Payload is the one external wire contract. Field names must stay exactly
// as the upstream prompt promises them.
type Payload struct {
	Strategies []RawCandidate `json:"strategies"`
}

// Reason tags why a candidate was rejected or flagged.
type Reason string

const (
	ReasonMissingField          Reason = "MissingField"
	ReasonUnknownExitPoint      Reason = "UnknownExitPoint"
	ReasonInvalidConfidence     Reason = "InvalidConfidence"
	ReasonMissingReasoning      Reason = "MissingReasoning"
	ReasonInconsistentReasoning Reason = "InconsistentReasoning"
	ReasonDuplicateExitPoint    Reason = "DuplicateExitPoint"
	FlagSuspiciouslyHighConf    Reason = "SuspiciouslyHighConfidence"
	FlagSuspiciouslyLowAvgConf  Reason = "SuspiciouslyLowAverageConfidence"
)

func issueText(r Reason, format string, args ...any) string {
	return fmt.Sprintf("%s: %s", r, fmt.Sprintf(format, args...))
}

// ExitStrategy is a validated, accepted recommendation. The exit point is a
// reference to the registered entry, never a copy.
type ExitStrategy struct {
	ID               string
	ExitPoint        *refdata.ExitPoint
	Confidence       float64
	Reasoning        string
	EstimatedArrival time.Time
}

// Result is the outcome of one synthesis pass: accepted strategies in
// first-seen order plus every diagnostic collected along the way.
type Result struct {
	Strategies []*ExitStrategy
	Issues     []string
}
