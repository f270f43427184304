package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/hikewise/exitadvisor/internal/display"
	"github.com/hikewise/exitadvisor/internal/run"
)

func main() {
	var cfg run.Config
	var arrivalOffsetMinutes int

	flag.StringVar(&cfg.RefDataPath, "refdata", "refdata.yaml", "Path to the exit point / profile reference file")
	flag.StringVar(&cfg.TrailName, "trail", "", "Trail name for the active hike")
	flag.StringVar(&cfg.Difficulty, "difficulty", "moderate", "Route difficulty (easy, moderate, hard, expert)")
	flag.StringVar(&cfg.Profile, "profile", "", "Hiker profile name from the reference file")
	flag.Float64Var(&cfg.Lat, "lat", 0, "Current latitude")
	flag.Float64Var(&cfg.Lon, "lon", 0, "Current longitude")
	flag.IntVar(&cfg.MaxAttempts, "max-attempts", 3, "Upstream generation attempts before giving up")
	flag.IntVar(&cfg.MaxStrategies, "max-strategies", 5, "Strategies to ask the model for (0 = model's choice)")
	flag.IntVar(&arrivalOffsetMinutes, "arrival-offset", 45, "Fixed estimated-arrival offset in minutes")
	flag.StringVar(&cfg.Model, "model", "", "Optional model override (otherwise COPILOT_MODEL/env default)")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Enable debug logs")
	flag.Parse()

	if cfg.TrailName == "" {
		fmt.Fprintln(os.Stderr, "error: --trail is required")
		flag.Usage()
		os.Exit(2)
	}
	cfg.ArrivalOffset = time.Duration(arrivalOffsetMinutes) * time.Minute

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid flags: %v", err)
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx := context.Background()
	runner := run.NewRunner(cfg, logger)
	result, err := runner.Execute(ctx)
	if err != nil {
		log.Fatalf("run failed: %v", err)
	}

	fmt.Print(display.Render(result.Strategies, result.Issues))
	fmt.Printf("attempts: %d\n", result.Attempts)
}
