// Package display renders accepted strategies and the issue log for the
// terminal. Pure formatting, no decision logic.
package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/hikewise/exitadvisor/internal/strategy"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	nameStyle   = lipgloss.NewStyle().Bold(true)
	metaStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	reasonStyle = lipgloss.NewStyle().Italic(true)
	issueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func Render(strategies []*strategy.ExitStrategy, issues []string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Exit strategies (%d)", len(strategies))))
	b.WriteString("\n")
	for i, s := range strategies {
		b.WriteString(fmt.Sprintf("%d. %s %s\n",
			i+1,
			nameStyle.Render(s.ExitPoint.Name),
			metaStyle.Render(fmt.Sprintf("(%s access, %.1f mi, confidence %.2f, ETA %s)",
				s.ExitPoint.Accessibility,
				s.ExitPoint.DistanceMiles,
				s.Confidence,
				s.EstimatedArrival.Format(time.Kitchen)))))
		b.WriteString("   " + reasonStyle.Render(s.Reasoning) + "\n")
	}

	if len(issues) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render(fmt.Sprintf("Issues (%d)", len(issues))))
		b.WriteString("\n")
		for _, issue := range issues {
			b.WriteString(issueStyle.Render("! "+issue) + "\n")
		}
	}

	return b.String()
}
