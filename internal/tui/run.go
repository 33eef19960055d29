package tui

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/rhythmui/internal/config"
	"github.com/jmylchreest/rhythmui/internal/overlay"
	"github.com/jmylchreest/rhythmui/internal/settings"
)

// RunOptions configures the scene.
type RunOptions struct {
	Config    *config.Config
	Overlay   *overlay.Manager
	Settings  *settings.Manager
	Forwarder Forwarder
	Logger    *slog.Logger
}

// Run starts the scene and blocks until the user quits.
func Run(opts RunOptions) error {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Overlay == nil {
		opts.Overlay = overlay.NewManager(&opts.Config.Overlay, opts.Logger)
	}

	m := New(opts.Config, opts.Overlay, Options{
		Settings:  opts.Settings,
		Forwarder: opts.Forwarder,
		Logger:    opts.Logger,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("scene failed: %w", err)
	}
	return nil
}
