package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/bizdash/internal/config"
	"github.com/theirongolddev/bizdash/internal/dashboard"
	"github.com/theirongolddev/bizdash/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	s, err := openSession(false)
	if err != nil {
		return err
	}
	defer func() { _ = s.close() }()

	reopen := func() *dashboard.Service {
		next, err := newSession(false, s.notes)
		if err != nil {
			logger.Warn("keeping previous session after setup", zap.Error(err))
			return nil
		}
		_ = s.close()
		s = next
		return s.svc
	}

	app := tui.NewApp(tui.Options{
		Service:       s.svc,
		Notifications: s.notes,
		Classifier:    s.classifier,
		ChartHeight:   cfg.Appearance.ChartHeight,
		NeedSetup:     !config.Exists(),
		SetupValues:   tui.SetupValuesFrom(cfg),
		SaveSetup: func(v tui.SetupValues) error {
			v.Apply(&cfg)
			return config.Save(cfg)
		},
		OnSetupSaved: reopen,
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
