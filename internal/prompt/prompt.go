// Package prompt renders the natural-language request sent to the model.
// The core never depends on this text; it only promises the payload field
// names the extractor looks for.
package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/hikewise/exitadvisor/internal/hike"
	"github.com/hikewise/exitadvisor/internal/refdata"
)

type Request struct {
	Hike            hike.Context
	TrailName       string
	ExitPoints      []*refdata.ExitPoint
	Profile         *refdata.UserProfile
	MaxStrategies   int
	ViolationReason string
}

// BuildExitStrategyRequest produces the strict-JSON instruction block plus
// the reference roster. The field names in the schema section are the wire
// contract and must not change.
func BuildExitStrategyRequest(req Request) string {
	b := strings.Builder{}
	b.WriteString("You are a hiking safety assistant. Recommend exit strategies for the hike below.\n")
	b.WriteString("Output STRICT JSON only, a single object with this exact shape:\n")
	b.WriteString(`{"strategies":[{"exitPointName":"...","confidence":0.0,"reasoning":"...","estimatedArrivalTime":"..."}]}`)
	b.WriteString("\n")
	b.WriteString("Return a plain JSON object only. No markdown wrappers, no prose outside the object.\n")
	b.WriteString("exitPointName must exactly match one of the known exit points listed below.\n")
	b.WriteString("confidence must be a number between 0 and 1. reasoning must be a short sentence.\n")
	b.WriteString("estimatedArrivalTime is optional.\n")
	if req.MaxStrategies > 0 {
		fmt.Fprintf(&b, "Recommend at most %d strategies.\n", req.MaxStrategies)
	}

	b.WriteString("\nHike:\n")
	if req.TrailName != "" {
		fmt.Fprintf(&b, "Trail: %s\n", req.TrailName)
	}
	fmt.Fprintf(&b, "Route difficulty: %s\n", req.Hike.RouteDifficulty)
	fmt.Fprintf(&b, "Elapsed: %s\n", req.Hike.Elapsed.Round(time.Second))
	fmt.Fprintf(&b, "Current position: %.5f, %.5f\n", req.Hike.Position.Lat, req.Hike.Position.Lon)

	if req.Profile != nil {
		b.WriteString("\nHiker:\n")
		fmt.Fprintf(&b, "Name: %s\n", req.Profile.Name)
		if req.Profile.Experience != "" {
			fmt.Fprintf(&b, "Experience: %s\n", req.Profile.Experience)
		}
	}

	b.WriteString("\nKnown exit points:\n")
	for _, p := range req.ExitPoints {
		fmt.Fprintf(&b, "- %s (accessibility %s, %.1f miles from current position)\n",
			p.Name, p.Accessibility, p.DistanceMiles)
	}

	if req.ViolationReason != "" {
		b.WriteString("\nYour previous answer was unusable: ")
		b.WriteString(req.ViolationReason)
		b.WriteString("\nFix that and answer again.\n")
	}

	b.WriteString("\nReturn only valid JSON.\n")
	return b.String()
}
