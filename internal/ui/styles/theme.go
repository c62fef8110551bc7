package styles

import (
	"image/color"
	"os"

	"charm.land/lipgloss/v2"

	"github.com/raphi011/prog/internal/config"
)

// Theme defines the color palette for UI components
type Theme struct {
	Primary color.Color // borders, headers
	Accent  color.Color // selected row, matched characters
	Success color.Color
	Error   color.Color
	Muted   color.Color // paths, secondary columns
	Normal  color.Color
	Info    color.Color
	Warning color.Color // paths that no longer exist
}

type themeFamily struct {
	Light *Theme // nil if no light variant
	Dark  *Theme // nil if no dark variant
}

var (
	// DefaultTheme is the built-in 256-color palette (dark only).
	DefaultTheme = Theme{
		Primary: lipgloss.Color("62"),
		Accent:  lipgloss.Color("212"),
		Success: lipgloss.Color("82"),
		Error:   lipgloss.Color("196"),
		Muted:   lipgloss.Color("240"),
		Normal:  lipgloss.Color("252"),
		Info:    lipgloss.Color("244"),
		Warning: lipgloss.Color("214"),
	}

	DraculaTheme = Theme{
		Primary: lipgloss.Color("#bd93f9"), // purple
		Accent:  lipgloss.Color("#ff79c6"), // pink
		Success: lipgloss.Color("#50fa7b"),
		Error:   lipgloss.Color("#ff5555"),
		Muted:   lipgloss.Color("#6272a4"), // comment
		Normal:  lipgloss.Color("#f8f8f2"),
		Info:    lipgloss.Color("#8be9fd"),
		Warning: lipgloss.Color("#ffb86c"),
	}

	NordTheme = Theme{
		Primary: lipgloss.Color("#88c0d0"), // nord8
		Accent:  lipgloss.Color("#b48ead"), // nord15
		Success: lipgloss.Color("#a3be8c"),
		Error:   lipgloss.Color("#bf616a"),
		Muted:   lipgloss.Color("#4c566a"), // nord3
		Normal:  lipgloss.Color("#eceff4"),
		Info:    lipgloss.Color("#81a1c1"),
		Warning: lipgloss.Color("#ebcb8b"),
	}

	NordLightTheme = Theme{
		Primary: lipgloss.Color("#5e81ac"), // nord10
		Accent:  lipgloss.Color("#b48ead"),
		Success: lipgloss.Color("#a3be8c"),
		Error:   lipgloss.Color("#bf616a"),
		Muted:   lipgloss.Color("#9a9a9a"),
		Normal:  lipgloss.Color("#2e3440"), // nord0
		Info:    lipgloss.Color("#81a1c1"),
		Warning: lipgloss.Color("#d08770"),
	}
)

var themeFamilies = map[string]themeFamily{
	"default": {Dark: &DefaultTheme},
	"dracula": {Dark: &DraculaTheme},
	"nord":    {Light: &NordLightTheme, Dark: &NordTheme},
}

var currentTheme = DefaultTheme

// Current returns the active theme.
func Current() Theme {
	return currentTheme
}

// Init applies the configured theme and symbol set.
// Names and modes were validated when the config was loaded; unknown
// values fall back to the default theme in auto mode.
func Init(cfg config.ThemeConfig) {
	currentTheme = selectTheme(cfg.Name, cfg.Mode, func() bool {
		return lipgloss.HasDarkBackground(os.Stdin, os.Stderr)
	})
	applyTheme(currentTheme)
	SetNerdfont(cfg.Nerdfont)
}

// selectTheme picks the variant of name for mode. isDark is only consulted
// in auto mode.
func selectTheme(name, mode string, isDark func() bool) Theme {
	family, ok := themeFamilies[name]
	if !ok {
		family = themeFamilies["default"]
	}

	var theme *Theme
	switch mode {
	case "light":
		theme = family.Light
	case "dark":
		theme = family.Dark
	default:
		if isDark() {
			theme = family.Dark
		} else {
			theme = family.Light
		}
	}

	// fall back to whichever variant the family has
	if theme == nil {
		theme = family.Dark
	}
	if theme == nil {
		theme = family.Light
	}
	return *theme
}

func applyTheme(t Theme) {
	Primary = t.Primary
	Accent = t.Accent
	Success = t.Success
	Error = t.Error
	Muted = t.Muted
	Normal = t.Normal
	Info = t.Info
	Warning = t.Warning

	PrimaryStyle = lipgloss.NewStyle().Foreground(t.Primary)
	AccentStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(t.Success)
	ErrorStyle = lipgloss.NewStyle().Foreground(t.Error)
	MutedStyle = lipgloss.NewStyle().Foreground(t.Muted)
	NormalStyle = lipgloss.NewStyle().Foreground(t.Normal)
	WarningStyle = lipgloss.NewStyle().Foreground(t.Warning)
	InfoStyle = lipgloss.NewStyle().Foreground(t.Info).Italic(true)
	HighlightStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Underline(true)
}
