package strategy

import (
	"time"

	"github.com/google/uuid"

	"github.com/hikewise/exitadvisor/internal/hike"
	"github.com/hikewise/exitadvisor/internal/refdata"
)

const (
	// DefaultArrivalOffset is the fixed forward offset used to derive the
	// estimated arrival. A placeholder policy: it is not computed from pace
	// or distance. TODO: derive arrival from distance and recent pace once
	// product settles on a pace source.
	DefaultArrivalOffset = 45 * time.Minute

	lowAverageConfidenceThreshold = 0.3
)

// Options carries the synthesis policy knobs. Clock and identity generation
// are injectable so identical inputs produce identical outputs under test.
type Options struct {
	ArrivalOffset time.Duration
	Now           func() time.Time
	NewID         func() string
}

func (o Options) withDefaults() Options {
	if o.ArrivalOffset <= 0 {
		o.ArrivalOffset = DefaultArrivalOffset
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	return o
}

// Synthesize runs the full pipeline over one model response: extract the
// payload, validate each candidate in order, suppress duplicate exit points
// first-seen-wins, and materialize the survivors. One bad candidate never
// aborts the batch; only a missing payload or an empty accepted list is
// fatal. The issue log is returned even alongside ErrNoValidStrategies so
// callers never lose diagnostics.
func Synthesize(responseText string, store *refdata.Store, hctx hike.Context, opts Options) (Result, error) {
	opts = opts.withDefaults()
	snap := store.Snapshot()

	payload, err := ExtractPayload(responseText)
	if err != nil {
		return Result{}, err
	}

	var (
		accepted []*ExitStrategy
		issues   []string
		seen     = map[string]bool{}
	)
	for _, raw := range payload.Strategies {
		verdict := ValidateCandidate(raw, snap, hctx)
		issues = append(issues, verdict.Issues...)
		if !verdict.Accepted() {
			continue
		}

		point := verdict.Skeleton.ExitPoint
		if seen[point.ID] {
			issues = append(issues, issueText(ReasonDuplicateExitPoint, "exit point %q already recommended, keeping the first", point.Name))
			continue
		}
		seen[point.ID] = true

		accepted = append(accepted, &ExitStrategy{
			ID:               opts.NewID(),
			ExitPoint:        point,
			Confidence:       verdict.Skeleton.Confidence,
			Reasoning:        verdict.Skeleton.Reasoning,
			EstimatedArrival: opts.Now().Add(opts.ArrivalOffset),
		})
	}

	if len(accepted) == 0 {
		return Result{Issues: issues}, ErrNoValidStrategies
	}

	total := 0.0
	for _, s := range accepted {
		total += s.Confidence
	}
	if mean := total / float64(len(accepted)); mean < lowAverageConfidenceThreshold {
		issues = append(issues, issueText(FlagSuspiciouslyLowAvgConf, "mean confidence %.2f across %d strategies is below %.2f", mean, len(accepted), lowAverageConfidenceThreshold))
	}

	return Result{Strategies: accepted, Issues: issues}, nil
}
