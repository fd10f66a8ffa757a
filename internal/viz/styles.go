package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/stellarsim/internal/classify"
	"github.com/san-kum/stellarsim/internal/evolution"
)

var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	StatusPlaying = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusPaused = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))
)

// StarStyle colours text with the blackbody colour of teff.
func StarStyle(teff float64) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(classify.TemperatureToHex(teff)))
}

// PhaseStyle picks a colour per evolutionary phase: remnants are dimmed,
// giants warm.
func PhaseStyle(p evolution.Phase) lipgloss.Style {
	var c string
	switch {
	case p.Remnant():
		c = "#8888aa"
	case p == evolution.PreMainSequence, p == evolution.MainSequence:
		c = "#ffee88"
	case p == evolution.Subgiant, p == evolution.RedGiant, p == evolution.AsymptoticGiant:
		c = "#ff6644"
	case p == evolution.HorizontalBranch:
		c = "#ffaa44"
	case p == evolution.Supernova:
		c = "#ff44ff"
	default:
		c = "#cccccc"
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c))
}

// GradientText blends each rune's colour from start to end in HCL space.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	a, errA := colorful.Hex(string(start))
	b, errB := colorful.Hex(string(end))
	if errA != nil || errB != nil {
		return text
	}

	var out strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := a.BlendHcl(b, t).Clamped()
		out.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(string(r)))
	}
	return out.String()
}

// ProgressBar renders the playhead position as a bar of the given width.
func ProgressBar(fraction float64, width int, fill lipgloss.Style) string {
	filled := int(fraction * float64(width))
	filled = max(0, min(width, filled))
	return fill.Render(strings.Repeat("█", filled)) + Subtle.Render(strings.Repeat("░", width-filled))
}

func Separator(width int) string {
	if width < 8 {
		return Subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	return Subtle.Render(strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3))
}
