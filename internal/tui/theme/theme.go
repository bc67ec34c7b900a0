// Package theme defines color themes for the finchat TUI.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/finchat/internal/model"
)

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name         string
	Background   lipgloss.Color // app background
	Surface      lipgloss.Color // card and panel backgrounds
	SurfaceHover lipgloss.Color // active page tab
	Border       lipgloss.Color
	BorderAccent lipgloss.Color // focused borders, help box
	TextDim      lipgloss.Color // hints, disabled
	TextMuted    lipgloss.Color // labels
	TextPrimary  lipgloss.Color
	Accent       lipgloss.Color
	AccentBright lipgloss.Color
	Green        lipgloss.Color // surplus, on track
	Orange       lipgloss.Color // over a benchmark
	Red          lipgloss.Color // deficit, negative sentiment
	Yellow       lipgloss.Color // neutral sentiment
	Cyan         lipgloss.Color // entity types
}

// palette lists a theme's colors in Theme field order, after Name.
type palette [15]string

func newTheme(name string, p palette) Theme {
	c := func(i int) lipgloss.Color { return lipgloss.Color(p[i]) }
	return Theme{
		Name:         name,
		Background:   c(0),
		Surface:      c(1),
		SurfaceHover: c(2),
		Border:       c(3),
		BorderAccent: c(4),
		TextDim:      c(5),
		TextMuted:    c(6),
		TextPrimary:  c(7),
		Accent:       c(8),
		AccentBright: c(9),
		Green:        c(10),
		Orange:       c(11),
		Red:          c(12),
		Yellow:       c(13),
		Cyan:         c(14),
	}
}

// FlexokiDark is the default: warm, paper-inspired dark.
var FlexokiDark = newTheme("flexoki-dark", palette{
	"#100F0F", "#1C1B1A", "#282726", "#403E3C", "#3AA99F",
	"#575653", "#878580", "#FFFCF0", "#3AA99F", "#5BC8BE",
	"#879A39", "#DA702C", "#D14D41", "#D0A215", "#24837B",
})

// FlexokiLight is the paper side of Flexoki, for light terminals.
var FlexokiLight = newTheme("flexoki-light", palette{
	"#FFFCF0", "#F2F0E5", "#E6E4D9", "#CECDC3", "#24837B",
	"#B7B5AC", "#6F6E69", "#100F0F", "#24837B", "#3AA99F",
	"#66800B", "#BC5215", "#AF3029", "#AD8301", "#24837B",
})

// CatppuccinMocha is a soft pastel dark theme.
var CatppuccinMocha = newTheme("catppuccin-mocha", palette{
	"#1E1E2E", "#313244", "#45475A", "#585B70", "#89B4FA",
	"#6C7086", "#A6ADC8", "#CDD6F4", "#89B4FA", "#B4D0FB",
	"#A6E3A1", "#FAB387", "#F38BA8", "#F9E2AF", "#94E2D5",
})

// TokyoNight is a cool blue and purple dark theme.
var TokyoNight = newTheme("tokyo-night", palette{
	"#1A1B26", "#24283B", "#343A52", "#565F89", "#7AA2F7",
	"#565F89", "#A9B1D6", "#C0CAF5", "#7AA2F7", "#A9C1FF",
	"#9ECE6A", "#FF9E64", "#F7768E", "#E0AF68", "#7DCFFF",
})

// Terminal uses the ANSI 16 colors only.
var Terminal = newTheme("terminal", palette{
	"0", "0", "8", "8", "6",
	"8", "7", "15", "6", "14",
	"2", "3", "1", "3", "6",
})

// All available themes.
var All = []Theme{FlexokiDark, FlexokiLight, CatppuccinMocha, TokyoNight, Terminal}

// Active is the currently selected theme.
var Active = FlexokiDark

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// Names lists the theme names in All order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// Sentiment returns the color for a sentiment label.
func (t Theme) Sentiment(label model.SentimentLabel) lipgloss.Color {
	switch label {
	case model.SentimentPositive:
		return t.Green
	case model.SentimentNegative:
		return t.Red
	default:
		return t.Yellow
	}
}

// Balance colors a money balance: red below zero, green otherwise.
func (t Theme) Balance(v float64) lipgloss.Color {
	if v < 0 {
		return t.Red
	}
	return t.Green
}
