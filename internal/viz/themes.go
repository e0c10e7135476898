package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the trace colours and panel accents.
type Theme struct {
	Name      string
	Re        lipgloss.Color
	Im        lipgloss.Color
	Abs       lipgloss.Color
	Potential lipgloss.Color
	Accent    lipgloss.Color
	Muted     lipgloss.Color
}

var (
	ThemeClassic = Theme{
		Name:      "classic",
		Re:        lipgloss.Color("#ff5f87"),
		Im:        lipgloss.Color("#5fafff"),
		Abs:       lipgloss.Color("#ffffff"),
		Potential: lipgloss.Color("#878787"),
		Accent:    lipgloss.Color("86"),
		Muted:     lipgloss.Color("240"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Re:        lipgloss.Color("#88ff88"),
		Im:        lipgloss.Color("#00cc00"),
		Abs:       lipgloss.Color("#00ff00"),
		Potential: lipgloss.Color("#005500"),
		Accent:    lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
	}

	ThemeSunset = Theme{
		Name:      "sunset",
		Re:        lipgloss.Color("#ff6b6b"),
		Im:        lipgloss.Color("#feca57"),
		Abs:       lipgloss.Color("#fff5f5"),
		Potential: lipgloss.Color("#8b6b8c"),
		Accent:    lipgloss.Color("#ff9ff3"),
		Muted:     lipgloss.Color("#8b6b8c"),
	}

	CurrentTheme = ThemeClassic

	Themes = []Theme{
		ThemeClassic,
		ThemeRetroGreen,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
}

// traceStyles returns styles indexed by trace id.
func (t Theme) traceStyles() []lipgloss.Style {
	styles := make([]lipgloss.Style, traceCount)
	styles[tracePotential] = lipgloss.NewStyle().Foreground(t.Potential)
	styles[traceRe] = lipgloss.NewStyle().Foreground(t.Re)
	styles[traceIm] = lipgloss.NewStyle().Foreground(t.Im)
	styles[traceAbs] = lipgloss.NewStyle().Foreground(t.Abs)
	return styles
}
