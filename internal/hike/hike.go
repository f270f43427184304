package hike

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hikewise/exitadvisor/internal/refdata"
)

// RouteDifficulty rates the overall route, not an individual exit point.
type RouteDifficulty int

const (
	RouteEasy RouteDifficulty = iota
	RouteModerate
	RouteHard
	RouteExpert
)

func (d RouteDifficulty) String() string {
	switch d {
	case RouteEasy:
		return "easy"
	case RouteModerate:
		return "moderate"
	case RouteHard:
		return "hard"
	case RouteExpert:
		return "expert"
	default:
		return "unknown"
	}
}

func ParseRouteDifficulty(s string) (RouteDifficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return RouteEasy, nil
	case "moderate":
		return RouteModerate, nil
	case "hard":
		return RouteHard, nil
	case "expert":
		return RouteExpert, nil
	default:
		return 0, fmt.Errorf("unknown route difficulty %q", s)
	}
}

// Context is the read-only view of an active hike that validation consumes.
type Context struct {
	RouteDifficulty RouteDifficulty
	Elapsed         time.Duration
	Position        refdata.Position
}

// Hike tracks one in-progress hike. Position updates are the only mutation.
type Hike struct {
	ID         string
	TrailName  string
	Difficulty RouteDifficulty
	StartedAt  time.Time

	mu       sync.RWMutex
	position refdata.Position
	now      func() time.Time
}

func Start(trailName string, difficulty RouteDifficulty, start refdata.Position, now func() time.Time) *Hike {
	if now == nil {
		now = time.Now
	}
	return &Hike{
		ID:         uuid.NewString(),
		TrailName:  trailName,
		Difficulty: difficulty,
		StartedAt:  now(),
		position:   start,
		now:        now,
	}
}

func (h *Hike) UpdatePosition(p refdata.Position) {
	h.mu.Lock()
	h.position = p
	h.mu.Unlock()
}

func (h *Hike) Position() refdata.Position {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.position
}

// Context snapshots the hike for one validation pass.
func (h *Hike) Context() Context {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return Context{
		RouteDifficulty: h.Difficulty,
		Elapsed:         h.now().Sub(h.StartedAt),
		Position:        h.position,
	}
}
