package strategy

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/hikewise/exitadvisor/internal/hike"
	"github.com/hikewise/exitadvisor/internal/refdata"
)

const highConfidenceThreshold = 0.95

// Skeleton is an accepted candidate before synthesis materializes it: the
// exit point is resolved and confidence and reasoning survive untouched.
// ArrivalHint is whatever the model offered; it is advisory and never used
// to derive the estimated arrival.
type Skeleton struct {
	ExitPoint   *refdata.ExitPoint
	Confidence  float64
	Reasoning   string
	ArrivalHint string
}

// Verdict is the outcome of validating one candidate. A rejected candidate
// carries its reason; both rejected and accepted candidates may carry
// human-readable issues (rejections and advisory flags respectively).
type Verdict struct {
	Skeleton Skeleton
	Reason   Reason
	Issues   []string
}

func (v Verdict) Accepted() bool { return v.Reason == "" }

func reject(r Reason, format string, args ...any) Verdict {
	return Verdict{Reason: r, Issues: []string{issueText(r, format, args...)}}
}

// ValidateCandidate runs the fixed check sequence against one raw candidate,
// short-circuiting at the first hard failure. The snapshot keeps the pass
// consistent even if the store is mutated concurrently.
func ValidateCandidate(raw RawCandidate, snap refdata.Snapshot, hctx hike.Context) Verdict {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return reject(ReasonMissingField, "candidate is not an object")
	}

	name, _ := fields["exitPointName"].(string)
	if name == "" {
		return reject(ReasonMissingField, "candidate has no exitPointName")
	}

	point, ok := snap.FindExitPointByName(name)
	if !ok {
		return reject(ReasonUnknownExitPoint, "no registered exit point named %q", name)
	}

	confidence, ok := fields["confidence"].(float64)
	if !ok || math.IsNaN(confidence) || math.IsInf(confidence, 0) || confidence < 0 || confidence > 1 {
		return reject(ReasonInvalidConfidence, "confidence %v for %q is not a number in [0,1]", fields["confidence"], name)
	}

	reasoning, _ := fields["reasoning"].(string)
	reasoning = strings.TrimSpace(reasoning)
	if reasoning == "" {
		return reject(ReasonMissingReasoning, "candidate for %q has empty reasoning", name)
	}

	if contradictions := reasoningContradictions(reasoning, point, hctx); len(contradictions) > 0 {
		v := Verdict{Reason: ReasonInconsistentReasoning}
		for _, c := range contradictions {
			v.Issues = append(v.Issues, issueText(ReasonInconsistentReasoning, "%s", c))
		}
		return v
	}

	hint, _ := fields["estimatedArrivalTime"].(string)
	verdict := Verdict{Skeleton: Skeleton{
		ExitPoint:   point,
		Confidence:  confidence,
		Reasoning:   reasoning,
		ArrivalHint: hint,
	}}
	if confidence > highConfidenceThreshold {
		verdict.Issues = append(verdict.Issues,
			issueText(FlagSuspiciouslyHighConf, "confidence %.2f for %q exceeds %.2f", confidence, name, highConfidenceThreshold))
	}
	return verdict
}

// consistencyRule couples a textual claim with the predicate that disproves
// it. The substring tests are deliberately crude ("not easy" still matches
// "easy") and deliberately over-reject: a self-contradictory exit
// recommendation is unsafe to surface, so false positives are the cheaper
// failure. Each rule stays behind its own predicate so a smarter language
// check can replace one without touching the control flow.
type consistencyRule struct {
	claim        string
	contradicted func(p *refdata.ExitPoint, h hike.Context) bool
	describe     func(p *refdata.ExitPoint, h hike.Context) string
}

var consistencyRules = []consistencyRule{
	{
		claim:        "easy",
		contradicted: claimsEasyAccessIsDifficult,
		describe: func(p *refdata.ExitPoint, _ hike.Context) string {
			return fmt.Sprintf("reasoning calls %q easy but its accessibility is difficult", p.Name)
		},
	},
	{
		claim:        "difficult",
		contradicted: claimsDifficultAccessIsEasy,
		describe: func(p *refdata.ExitPoint, _ hike.Context) string {
			return fmt.Sprintf("reasoning calls %q difficult but its accessibility is easy", p.Name)
		},
	},
	{
		claim:        "close",
		contradicted: claimsCloseButDistant,
		describe: func(p *refdata.ExitPoint, _ hike.Context) string {
			return fmt.Sprintf("reasoning calls %q close but it is %.1f miles away", p.Name, p.DistanceMiles)
		},
	},
	{
		claim:        "far",
		contradicted: claimsFarButNearby,
		describe: func(p *refdata.ExitPoint, _ hike.Context) string {
			return fmt.Sprintf("reasoning calls %q far but it is %.1f miles away", p.Name, p.DistanceMiles)
		},
	},
	{
		claim:        "good weather",
		contradicted: claimsGoodWeatherOnExpertRoute,
		describe: func(_ *refdata.ExitPoint, h hike.Context) string {
			return fmt.Sprintf("reasoning assumes good weather on an %s route", h.RouteDifficulty)
		},
	},
	{
		claim:        "beginner",
		contradicted: claimsBeginnerOnExpertRoute,
		describe: func(_ *refdata.ExitPoint, h hike.Context) string {
			return fmt.Sprintf("reasoning assumes a beginner on an %s route", h.RouteDifficulty)
		},
	},
}

func claimsEasyAccessIsDifficult(p *refdata.ExitPoint, _ hike.Context) bool {
	return p.Accessibility == refdata.AccessDifficult
}

func claimsDifficultAccessIsEasy(p *refdata.ExitPoint, _ hike.Context) bool {
	return p.Accessibility == refdata.AccessEasy
}

func claimsCloseButDistant(p *refdata.ExitPoint, _ hike.Context) bool {
	return p.DistanceMiles > 2
}

func claimsFarButNearby(p *refdata.ExitPoint, _ hike.Context) bool {
	return p.DistanceMiles < 1
}

func claimsGoodWeatherOnExpertRoute(_ *refdata.ExitPoint, h hike.Context) bool {
	return h.RouteDifficulty == hike.RouteExpert
}

func claimsBeginnerOnExpertRoute(_ *refdata.ExitPoint, h hike.Context) bool {
	return h.RouteDifficulty == hike.RouteExpert
}

// reasoningContradictions reports every rule whose claim appears in the
// reasoning and is disproved by the resolved exit point or hike context.
func reasoningContradictions(reasoning string, p *refdata.ExitPoint, h hike.Context) []string {
	lower := strings.ToLower(reasoning)
	var out []string
	for _, rule := range consistencyRules {
		if !strings.Contains(lower, rule.claim) {
			continue
		}
		if rule.contradicted(p, h) {
			out = append(out, rule.describe(p, h))
		}
	}
	return out
}
