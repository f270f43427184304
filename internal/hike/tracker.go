package hike

import (
	"fmt"
	"sync"
	"time"

	"github.com/hikewise/exitadvisor/internal/refdata"
)

// Tracker keeps the active hikes for the lifetime of the process.
// Nothing is persisted; ending a hike forgets it.
type Tracker struct {
	mu    sync.RWMutex
	hikes map[string]*Hike
	now   func() time.Time
}

func NewTracker(now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{hikes: map[string]*Hike{}, now: now}
}

func (t *Tracker) Start(trailName string, difficulty RouteDifficulty, start refdata.Position) *Hike {
	h := Start(trailName, difficulty, start, t.now)
	t.mu.Lock()
	t.hikes[h.ID] = h
	t.mu.Unlock()
	return h
}

func (t *Tracker) Get(id string) (*Hike, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	h, ok := t.hikes[id]
	return h, ok
}

func (t *Tracker) End(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.hikes[id]; !ok {
		return fmt.Errorf("no active hike with id %q", id)
	}
	delete(t.hikes, id)
	return nil
}

func (t *Tracker) Active() []*Hike {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*Hike, 0, len(t.hikes))
	for _, h := range t.hikes {
		out = append(out, h)
	}
	return out
}
