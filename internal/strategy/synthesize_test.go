package strategy_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hikewise/exitadvisor/internal/hike"
	"github.com/hikewise/exitadvisor/internal/refdata"
	"github.com/hikewise/exitadvisor/internal/strategy"
)

func fixedOptions() strategy.Options {
	ids := 0
	return strategy.Options{
		ArrivalOffset: 30 * time.Minute,
		Now:           func() time.Time { return time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC) },
		NewID: func() string {
			ids++
			return fmt.Sprintf("strategy-%03d", ids)
		},
	}
}

func TestSynthesizeAcceptsAllCleanCandidates(t *testing.T) {
	store := testStore(t)
	hctx := hike.Context{RouteDifficulty: hike.RouteModerate}

	text := `{"strategies":[
		{"exitPointName":"Bear Brook Trail","confidence":0.8,"reasoning":"A gentle marked spur."},
		{"exitPointName":"Granite Notch","confidence":0.6,"reasoning":"Steep but well marked."},
		{"exitPointName":"Mill Road Crossing","confidence":0.7,"reasoning":"Short connector to the road."}
	]}`

	result, err := strategy.Synthesize(text, store, hctx, fixedOptions())
	require.NoError(t, err)
	assert.Empty(t, result.Issues)
	require.Len(t, result.Strategies, 3)

	// first-seen order preserved
	assert.Equal(t, "Bear Brook Trail", result.Strategies[0].ExitPoint.Name)
	assert.Equal(t, "Granite Notch", result.Strategies[1].ExitPoint.Name)
	assert.Equal(t, "Mill Road Crossing", result.Strategies[2].ExitPoint.Name)

	for _, s := range result.Strategies {
		assert.NotEmpty(t, s.ID)
		assert.NotEmpty(t, s.Reasoning)
		assert.GreaterOrEqual(t, s.Confidence, 0.0)
		assert.LessOrEqual(t, s.Confidence, 1.0)
		assert.Equal(t, time.Date(2026, 8, 23, 10, 30, 0, 0, time.UTC), s.EstimatedArrival)
	}
}

func TestSynthesizeUnknownPointDoesNotAbortBatch(t *testing.T) {
	store := testStore(t)
	hctx := hike.Context{RouteDifficulty: hike.RouteModerate}

	text := `{"strategies":[
		{"exitPointName":"Lost Lake","confidence":0.8,"reasoning":"A gentle marked spur."},
		{"exitPointName":"Granite Notch","confidence":0.6,"reasoning":"Steep but well marked."}
	]}`

	result, err := strategy.Synthesize(text, store, hctx, fixedOptions())
	require.NoError(t, err)
	require.Len(t, result.Strategies, 1)
	assert.Equal(t, "Granite Notch", result.Strategies[0].ExitPoint.Name)
	require.Len(t, result.Issues, 1)
	assert.Contains(t, result.Issues[0], "UnknownExitPoint")
}

func TestSynthesizeSuppressesDuplicatesFirstSeenWins(t *testing.T) {
	store := testStore(t)
	hctx := hike.Context{RouteDifficulty: hike.RouteModerate}

	text := `{"strategies":[
		{"exitPointName":"Bear Brook Trail","confidence":0.8,"reasoning":"A gentle marked spur."},
		{"exitPointName":"Bear Brook Trail","confidence":0.9,"reasoning":"Same spur, stated twice."}
	]}`

	result, err := strategy.Synthesize(text, store, hctx, fixedOptions())
	require.NoError(t, err)
	require.Len(t, result.Strategies, 1)
	assert.InDelta(t, 0.8, result.Strategies[0].Confidence, 1e-9, "the first candidate wins")
	require.Len(t, result.Issues, 1)
	assert.Contains(t, result.Issues[0], "DuplicateExitPoint")
}

func TestSynthesizeIsDeterministicWithFixedSources(t *testing.T) {
	store := testStore(t)
	hctx := hike.Context{RouteDifficulty: hike.RouteModerate}

	text := `{"strategies":[
		{"exitPointName":"Bear Brook Trail","confidence":0.8,"reasoning":"A gentle marked spur."},
		{"exitPointName":"Granite Notch","confidence":0.6,"reasoning":"Steep but well marked."}
	]}`

	first, err := strategy.Synthesize(text, store, hctx, fixedOptions())
	require.NoError(t, err)
	second, err := strategy.Synthesize(text, store, hctx, fixedOptions())
	require.NoError(t, err)

	require.Len(t, second.Strategies, len(first.Strategies))
	for i := range first.Strategies {
		assert.Equal(t, first.Strategies[i].ID, second.Strategies[i].ID)
		assert.Equal(t, first.Strategies[i].ExitPoint, second.Strategies[i].ExitPoint)
		assert.Equal(t, first.Strategies[i].Confidence, second.Strategies[i].Confidence)
		assert.Equal(t, first.Strategies[i].EstimatedArrival, second.Strategies[i].EstimatedArrival)
	}
	assert.Equal(t, first.Issues, second.Issues)
}

func TestSynthesizeScenarioCleanBearBrook(t *testing.T) {
	store := refdata.NewStore()
	_, err := store.RegisterExitPoint(refdata.ExitPoint{
		Name:          "Bear Brook Trail",
		Accessibility: refdata.AccessEasy,
		DistanceMiles: 1.2,
	})
	require.NoError(t, err)
	hctx := hike.Context{RouteDifficulty: hike.RouteModerate}

	text := `{"strategies":[{"exitPointName":"Bear Brook Trail","confidence":0.85,"reasoning":"This is a close and easy exit given current pace."}]}`

	result, err := strategy.Synthesize(text, store, hctx, fixedOptions())
	require.NoError(t, err)
	require.Len(t, result.Strategies, 1)
	assert.Empty(t, result.Issues)
}

func TestSynthesizeScenarioContradictoryReasoning(t *testing.T) {
	// An easy exit point under a mile away; the reasoning claims the
	// opposite on both axes, so both rules must fire and the sole candidate
	// is rejected, which makes the whole batch fail.
	store := refdata.NewStore()
	_, err := store.RegisterExitPoint(refdata.ExitPoint{
		Name:          "Bear Brook Trail",
		Accessibility: refdata.AccessEasy,
		DistanceMiles: 0.9,
	})
	require.NoError(t, err)
	hctx := hike.Context{RouteDifficulty: hike.RouteModerate}

	text := `{"strategies":[{"exitPointName":"Bear Brook Trail","confidence":0.85,"reasoning":"This difficult route is far from here"}]}`

	result, err := strategy.Synthesize(text, store, hctx, fixedOptions())
	require.ErrorIs(t, err, strategy.ErrNoValidStrategies)
	assert.Empty(t, result.Strategies)

	joined := strings.Join(result.Issues, "\n")
	assert.Contains(t, joined, "difficult")
	assert.Contains(t, joined, "far")
	require.Len(t, result.Issues, 2)
}

func TestSynthesizeMalformedResponse(t *testing.T) {
	store := testStore(t)
	hctx := hike.Context{RouteDifficulty: hike.RouteModerate}

	_, err := strategy.Synthesize("I cannot help with that.", store, hctx, fixedOptions())
	require.ErrorIs(t, err, strategy.ErrMalformedResponse)
}

func TestSynthesizeEmptyStrategiesIsFatal(t *testing.T) {
	store := testStore(t)
	hctx := hike.Context{RouteDifficulty: hike.RouteModerate}

	result, err := strategy.Synthesize(`{"strategies":[]}`, store, hctx, fixedOptions())
	require.ErrorIs(t, err, strategy.ErrNoValidStrategies)
	assert.Empty(t, result.Strategies)
}

func TestSynthesizeFlagsLowAverageConfidence(t *testing.T) {
	store := refdata.NewStore()
	var entries []string
	for i := 0; i < 10; i++ {
		name := fmt.Sprintf("Exit %d", i)
		_, err := store.RegisterExitPoint(refdata.ExitPoint{
			Name:          name,
			Accessibility: refdata.AccessModerate,
			DistanceMiles: 1.5,
		})
		require.NoError(t, err)
		entries = append(entries, fmt.Sprintf(
			`{"exitPointName":%q,"confidence":0.1,"reasoning":"A marked connector to the road."}`, name))
	}
	text := fmt.Sprintf(`{"strategies":[%s]}`, strings.Join(entries, ","))
	hctx := hike.Context{RouteDifficulty: hike.RouteModerate}

	result, err := strategy.Synthesize(text, store, hctx, fixedOptions())
	require.NoError(t, err)
	assert.Len(t, result.Strategies, 10, "low confidence alone drops nothing")
	require.Len(t, result.Issues, 1)
	assert.Contains(t, result.Issues[0], "SuspiciouslyLowAverageConfidence")
}

func TestSynthesizeBoundaryConfidences(t *testing.T) {
	store := testStore(t)
	hctx := hike.Context{RouteDifficulty: hike.RouteModerate}

	text := `{"strategies":[
		{"exitPointName":"Bear Brook Trail","confidence":0,"reasoning":"A gentle marked spur."},
		{"exitPointName":"Granite Notch","confidence":1,"reasoning":"Steep but well marked."},
		{"exitPointName":"Mill Road Crossing","confidence":-0.0001,"reasoning":"Short connector to the road."}
	]}`

	result, err := strategy.Synthesize(text, store, hctx, fixedOptions())
	require.NoError(t, err)
	require.Len(t, result.Strategies, 2, "0 and 1 are legal, -0.0001 is not")

	var invalid, high int
	for _, issue := range result.Issues {
		if strings.Contains(issue, "InvalidConfidence") {
			invalid++
		}
		if strings.Contains(issue, "SuspiciouslyHighConfidence") {
			high++
		}
	}
	assert.Equal(t, 1, invalid)
	assert.Equal(t, 1, high, "confidence 1 is accepted but flagged")
}
