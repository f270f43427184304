package refdata

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type fileFormat struct {
	ExitPoints []exitPointEntry `yaml:"exit_points"`
	Profiles   []profileEntry   `yaml:"profiles"`
}

type exitPointEntry struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	Accessibility string   `yaml:"accessibility"`
	DistanceMiles float64  `yaml:"distance_miles"`
	Position      Position `yaml:"position"`
}

type profileEntry struct {
	ID               string `yaml:"id"`
	Name             string `yaml:"name"`
	Experience       string `yaml:"experience"`
	EmergencyContact string `yaml:"emergency_contact"`
}

// Load reads a reference-data YAML file into a fresh Store.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reference data: %w", err)
	}
	return Parse(data)
}

// Parse builds a Store from raw reference-data YAML.
func Parse(data []byte) (*Store, error) {
	var file fileFormat
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse reference data: %w", err)
	}

	store := NewStore()
	for _, e := range file.ExitPoints {
		tier, err := ParseAccessibility(e.Accessibility)
		if err != nil {
			return nil, fmt.Errorf("exit point %q: %w", e.Name, err)
		}
		if _, err := store.RegisterExitPoint(ExitPoint{
			ID:            e.ID,
			Name:          e.Name,
			Position:      e.Position,
			Accessibility: tier,
			DistanceMiles: e.DistanceMiles,
		}); err != nil {
			return nil, err
		}
	}
	for _, e := range file.Profiles {
		if _, err := store.RegisterProfile(UserProfile{
			ID:               e.ID,
			Name:             e.Name,
			Experience:       e.Experience,
			EmergencyContact: e.EmergencyContact,
		}); err != nil {
			return nil, err
		}
	}
	return store, nil
}
