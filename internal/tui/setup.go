package tui

import (
	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/bizdash/internal/config"
	"github.com/theirongolddev/bizdash/internal/tui/theme"
)

// SetupValues are the answers collected by the setup form.
type SetupValues struct {
	APIURL     string
	Token      string
	Theme      string
	Persistent bool
}

// SetupValuesFrom seeds the form with the current configuration.
func SetupValuesFrom(cfg config.Config) SetupValues {
	return SetupValues{
		APIURL:     cfg.API.BaseURL,
		Token:      cfg.API.Token,
		Theme:      cfg.Appearance.Theme,
		Persistent: cfg.Cache.Persistent,
	}
}

// Apply copies the answers into cfg. A blank token keeps the existing one.
func (v SetupValues) Apply(cfg *config.Config) {
	cfg.API.BaseURL = v.APIURL
	if v.Token != "" {
		cfg.API.Token = v.Token
	}
	cfg.Appearance.Theme = v.Theme
	cfg.Cache.Persistent = v.Persistent
}

func validateBaseURL(s string) error {
	cfg := config.DefaultConfig()
	cfg.API.BaseURL = s
	return cfg.Validate()
}

// NewSetupForm builds the first-run form writing into v.
func NewSetupForm(v *SetupValues) *huh.Form {
	themes := huh.NewOptions(theme.Names()...)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Backend URL").
				Description("Where the bizdash API is served.").
				Value(&v.APIURL).
				Validate(validateBaseURL),
			huh.NewInput().
				Title("API token").
				Description("Bearer token. Leave blank to keep the current one.").
				EchoMode(huh.EchoModePassword).
				Value(&v.Token),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&v.Theme),
			huh.NewConfirm().
				Title("Keep a query cache on disk?").
				Description("Speeds up startup. Writes always refresh what they change.").
				Value(&v.Persistent),
		),
	).WithTheme(huh.ThemeCharm())
}
