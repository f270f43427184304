package refdata

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Store is the in-memory reference table of exit points and user profiles.
// Registrations may happen while validation passes are in flight; readers
// that need a consistent view take a Snapshot first.
type Store struct {
	mu       sync.RWMutex
	points   map[string]*ExitPoint
	order    []string
	profiles map[string]*UserProfile
}

func NewStore() *Store {
	return &Store{
		points:   map[string]*ExitPoint{},
		profiles: map[string]*UserProfile{},
	}
}

// RegisterExitPoint adds a new exit point keyed by its display name.
// The stored value is a copy; callers cannot mutate it afterwards.
func (s *Store) RegisterExitPoint(p ExitPoint) (*ExitPoint, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("exit point name must not be empty")
	}
	if p.DistanceMiles < 0 {
		return nil, fmt.Errorf("exit point %q has negative distance %.2f", p.Name, p.DistanceMiles)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.points[p.Name]; ok {
		return nil, fmt.Errorf("exit point %q already registered", p.Name)
	}
	stored := p
	s.points[p.Name] = &stored
	s.order = append(s.order, p.Name)
	return &stored, nil
}

func (s *Store) RegisterProfile(p UserProfile) (*UserProfile, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("profile name must not be empty")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[p.Name]; ok {
		return nil, fmt.Errorf("profile %q already registered", p.Name)
	}
	stored := p
	s.profiles[p.Name] = &stored
	return &stored, nil
}

// FindExitPointByName is an exact, case-sensitive lookup.
func (s *Store) FindExitPointByName(name string) (*ExitPoint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.points[name]
	return p, ok
}

func (s *Store) FindProfileByName(name string) (*UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[name]
	return p, ok
}

// ExitPoints returns the registered exit points in registration order.
func (s *Store) ExitPoints() []*ExitPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*ExitPoint, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.points[name])
	}
	return out
}

// Snapshot copies the exit point table so a validation pass observes a
// consistent view even if registrations land mid-pass. ExitPoints are
// immutable after registration, so sharing the pointers is safe.
type Snapshot struct {
	byName map[string]*ExitPoint
	order  []string
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byName := make(map[string]*ExitPoint, len(s.points))
	for name, p := range s.points {
		byName[name] = p
	}
	order := make([]string, len(s.order))
	copy(order, s.order)
	return Snapshot{byName: byName, order: order}
}

func (s Snapshot) FindExitPointByName(name string) (*ExitPoint, bool) {
	p, ok := s.byName[name]
	return p, ok
}

func (s Snapshot) ExitPoints() []*ExitPoint {
	out := make([]*ExitPoint, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.byName[name])
	}
	return out
}

func (s Snapshot) Len() int {
	return len(s.byName)
}
