package run

import (
	"fmt"
	"time"
)

type Config struct {
	RefDataPath   string
	TrailName     string
	Difficulty    string
	Profile       string
	Lat           float64
	Lon           float64
	MaxAttempts   int
	MaxStrategies int
	ArrivalOffset time.Duration
	Model         string
	Verbose       bool
}

func (c Config) Validate() error {
	if c.RefDataPath == "" {
		return fmt.Errorf("refdata path is required")
	}
	if c.TrailName == "" {
		return fmt.Errorf("trail name is required")
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max-attempts must be >= 1")
	}
	if c.MaxStrategies < 0 {
		return fmt.Errorf("max-strategies must be >= 0")
	}
	if c.ArrivalOffset < 0 {
		return fmt.Errorf("arrival-offset must be >= 0")
	}
	return nil
}
