package tui

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/finchat/internal/config"
	"github.com/theirongolddev/finchat/internal/tui/theme"
)

// SetupValues holds the first-run wizard answers.
type SetupValues struct {
	Persona  string
	Currency string
	Theme    string
	Latency  bool
	History  bool
	APIURL   string
}

// NewSetupValues pre-fills the wizard from cfg.
func NewSetupValues(cfg config.Config) *SetupValues {
	return &SetupValues{
		Persona:  cfg.General.Persona,
		Currency: cfg.General.Currency,
		Theme:    cfg.Appearance.Theme,
		Latency:  cfg.Latency.Enabled,
		History:  cfg.History.Enabled,
		APIURL:   cfg.General.APIURL,
	}
}

// Apply writes the answers into cfg.
func (v *SetupValues) Apply(cfg *config.Config) {
	cfg.General.Persona = v.Persona
	if c := strings.TrimSpace(v.Currency); c != "" {
		cfg.General.Currency = c
	}
	cfg.General.APIURL = strings.TrimSpace(v.APIURL)
	cfg.Appearance.Theme = v.Theme
	cfg.Latency.Enabled = v.Latency
	if v.Latency && cfg.Latency.Scale <= 0 {
		cfg.Latency.Scale = 1
	}
	cfg.History.Enabled = v.History
}

func validAPIURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("expected an http(s) URL")
	}
	return nil
}

// NewSetupForm builds the first-run wizard bound to v.
func NewSetupForm(v *SetupValues) *huh.Form {
	themes := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themes = append(themes, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to finchat").
				Description("A few questions to set your defaults.\nSaved to "+config.ConfigPath()),
			personaSelect("Default user type", &v.Persona),
			huh.NewInput().Title("Currency symbol").CharLimit(3).Value(&v.Currency),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Color theme").Options(themes...).Value(&v.Theme),
			huh.NewConfirm().Title("Simulate processing delay?").Value(&v.Latency),
			huh.NewConfirm().Title("Keep a history of generated reports?").Value(&v.History),
			huh.NewInput().
				Title("Remote API URL").
				Description("leave blank to compute locally").
				Value(&v.APIURL).
				Validate(validAPIURL),
		),
	)
}
