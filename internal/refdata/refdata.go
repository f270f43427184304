package refdata

import (
	"fmt"
	"strings"
)

// Accessibility ranks how hard it is to reach an exit point from the trail.
type Accessibility int

const (
	AccessEasy Accessibility = iota
	AccessModerate
	AccessDifficult
)

func (a Accessibility) String() string {
	switch a {
	case AccessEasy:
		return "easy"
	case AccessModerate:
		return "moderate"
	case AccessDifficult:
		return "difficult"
	default:
		return "unknown"
	}
}

func ParseAccessibility(s string) (Accessibility, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return AccessEasy, nil
	case "moderate":
		return AccessModerate, nil
	case "difficult":
		return AccessDifficult, nil
	default:
		return 0, fmt.Errorf("unknown accessibility tier %q", s)
	}
}

type Position struct {
	Lat float64 `yaml:"lat" json:"lat"`
	Lon float64 `yaml:"lon" json:"lon"`
}

// ExitPoint is a named, located place a hiker can leave the trail.
// Instances are immutable once registered in a Store.
type ExitPoint struct {
	ID            string
	Name          string
	Position      Position
	Accessibility Accessibility
	DistanceMiles float64
}

// UserProfile carries the hiker attributes the prompt builder consults.
type UserProfile struct {
	ID               string
	Name             string
	Experience       string
	EmergencyContact string
}
