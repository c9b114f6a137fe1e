package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/bastiangx/geoserve/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
)

var (
	nameStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"})
	rankStyle  = lipgloss.NewStyle().Faint(true)
	scoreStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
)

// RenderSuggestions writes one numbered line per suggestion.
func RenderSuggestions(w io.Writer, suggestions []suggest.Suggestion) {
	width := 0
	for _, s := range suggestions {
		if n := lipgloss.Width(s.Name); n > width {
			width = n
		}
	}

	for i, s := range suggestions {
		pad := strings.Repeat(" ", width-lipgloss.Width(s.Name))
		fmt.Fprintf(w, "%s %s%s  %s  (%.5f, %.5f)\n",
			rankStyle.Render(fmt.Sprintf("%2d.", i+1)),
			nameStyle.Render(s.Name), pad,
			scoreStyle.Render(fmt.Sprintf("%.4f", s.Score)),
			s.Latitude, s.Longitude)
	}
}

// formatWithCommas formats an integer with comma separators
func formatWithCommas(n int) string {
	str := fmt.Sprintf("%d", n)
	if n < 0 {
		return "-" + formatWithCommas(-n)
	}
	if n < 1000 {
		return str
	}

	var b strings.Builder
	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(char)
	}
	return b.String()
}
