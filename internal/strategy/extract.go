package strategy

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractPayload isolates the strategy payload from arbitrary model output.
// If the trimmed text already starts with an object it is parsed directly;
// otherwise the substring from the first '{' to the last '}' is tried. Models
// routinely wrap the object in prose or markdown fences, so the scan must
// tolerate leading and trailing noise but nothing fancier than that.
func ExtractPayload(text string) (Payload, error) {
	trimmed := strings.TrimSpace(text)
	blob := trimmed
	if !strings.HasPrefix(trimmed, "{") {
		start := strings.Index(trimmed, "{")
		end := strings.LastIndex(trimmed, "}")
		if start < 0 || end < start {
			return Payload{}, fmt.Errorf("%w: no object braces in %d bytes of text", ErrMalformedResponse, len(trimmed))
		}
		blob = trimmed[start : end+1]
	}

	var probe struct {
		Strategies *[]RawCandidate `json:"strategies"`
	}
	if err := json.Unmarshal([]byte(blob), &probe); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if probe.Strategies == nil {
		return Payload{}, fmt.Errorf("%w: payload has no strategies sequence", ErrMalformedResponse)
	}
	return Payload{Strategies: *probe.Strategies}, nil
}
