package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the colour scheme of the player chrome. The star and its marker
// always use the blackbody colour.
type Theme struct {
	Name    string
	Title   [2]lipgloss.Color
	Track   lipgloss.Color
	Accent  lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color
}

var (
	ThemeNebula = Theme{
		Name:    "nebula",
		Title:   [2]lipgloss.Color{"#ff66cc", "#66ccff"},
		Track:   "#5566aa",
		Accent:  "#00ccff",
		Muted:   "#666688",
		Warning: "#ffaa00",
	}

	ThemeSolar = Theme{
		Name:    "solar",
		Title:   [2]lipgloss.Color{"#ffdd55", "#ff5522"},
		Track:   "#aa7744",
		Accent:  "#ffcc00",
		Muted:   "#887766",
		Warning: "#ff4444",
	}

	ThemeMono = Theme{
		Name:    "mono",
		Title:   [2]lipgloss.Color{"#ffffff", "#888888"},
		Track:   "#777777",
		Accent:  "#ffffff",
		Muted:   "#666666",
		Warning: "#bbbbbb",
	}

	Themes = []Theme{ThemeNebula, ThemeSolar, ThemeMono}
)

// GetTheme returns the named theme, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after t in Themes, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
