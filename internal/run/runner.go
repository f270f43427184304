package run

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/hikewise/exitadvisor/internal/copilot"
	"github.com/hikewise/exitadvisor/internal/hike"
	"github.com/hikewise/exitadvisor/internal/prompt"
	"github.com/hikewise/exitadvisor/internal/refdata"
	"github.com/hikewise/exitadvisor/internal/strategy"
)

type Runner struct {
	cfg    Config
	logger *slog.Logger
}

type Result struct {
	Hike       *hike.Hike
	Strategies []*strategy.ExitStrategy
	Issues     []string
	Attempts   int
}

func NewRunner(cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{cfg: cfg, logger: logger}
}

// Execute loads the reference data, starts the hike, and asks the model for
// exit strategies until synthesis accepts something or attempts run out.
// The core never retries internally: a malformed response or an empty
// accepted set is terminal per invocation, so the retry loop lives here, at
// the caller, with a violation note folded into the next prompt.
func (r *Runner) Execute(ctx context.Context) (Result, error) {
	store, err := refdata.Load(r.cfg.RefDataPath)
	if err != nil {
		return Result{}, err
	}
	if len(store.ExitPoints()) == 0 {
		return Result{}, fmt.Errorf("reference data %q contains no exit points", r.cfg.RefDataPath)
	}

	difficulty, err := hike.ParseRouteDifficulty(r.cfg.Difficulty)
	if err != nil {
		return Result{}, err
	}

	var profile *refdata.UserProfile
	if r.cfg.Profile != "" {
		p, ok := store.FindProfileByName(r.cfg.Profile)
		if !ok {
			return Result{}, fmt.Errorf("no profile named %q in reference data", r.cfg.Profile)
		}
		profile = p
	}

	tracker := hike.NewTracker(nil)
	h := tracker.Start(r.cfg.TrailName, difficulty, refdata.Position{Lat: r.cfg.Lat, Lon: r.cfg.Lon})
	defer func() {
		_ = tracker.End(h.ID)
	}()
	r.logger.Info("hike started", "id", h.ID, "trail", h.TrailName, "difficulty", difficulty.String())

	cwd, err := os.Getwd()
	if err != nil {
		return Result{}, fmt.Errorf("resolve working directory: %w", err)
	}
	manager, err := copilot.NewManager(ctx, cwd, copilot.Options{Model: r.cfg.Model, Logger: r.logger})
	if err != nil {
		return Result{}, err
	}
	defer manager.Close()

	session, err := manager.CreateAdvisorSession(ctx, cwd)
	if err != nil {
		return Result{}, err
	}
	defer session.Destroy()

	opts := strategy.Options{ArrivalOffset: r.cfg.ArrivalOffset}
	violation := ""
	var lastErr error

	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		text := prompt.BuildExitStrategyRequest(prompt.Request{
			Hike:            h.Context(),
			TrailName:       h.TrailName,
			ExitPoints:      store.ExitPoints(),
			Profile:         profile,
			MaxStrategies:   r.cfg.MaxStrategies,
			ViolationReason: violation,
		})

		response, err := manager.RequestExitStrategies(ctx, session, text)
		if err != nil {
			return Result{}, err
		}

		result, err := strategy.Synthesize(response, store, h.Context(), opts)
		for _, issue := range result.Issues {
			r.logger.Warn("validation issue", "attempt", attempt, "issue", issue)
		}
		if err == nil {
			r.logger.Info("strategies accepted", "attempt", attempt, "count", len(result.Strategies))
			return Result{Hike: h, Strategies: result.Strategies, Issues: result.Issues, Attempts: attempt}, nil
		}

		lastErr = err
		switch {
		case errors.Is(err, strategy.ErrMalformedResponse):
			violation = "the response was not a parseable JSON object with a strategies array"
		case errors.Is(err, strategy.ErrNoValidStrategies):
			violation = "every recommended strategy was rejected; use only the listed exit points and keep reasoning consistent with their attributes"
		default:
			return Result{}, err
		}
		r.logger.Warn("synthesis failed, retrying upstream", "attempt", attempt, "error", err)
	}

	return Result{}, fmt.Errorf("no usable strategies after %d attempts: %w", r.cfg.MaxAttempts, lastErr)
}
