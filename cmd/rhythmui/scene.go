package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/rhythmui/internal/config"
	"github.com/jmylchreest/rhythmui/internal/dbus"
	"github.com/jmylchreest/rhythmui/internal/overlay"
	"github.com/jmylchreest/rhythmui/internal/settings"
	"github.com/jmylchreest/rhythmui/internal/tui"
)

var sceneOpts struct {
	desktop bool
}

var sceneCmd = &cobra.Command{
	Use:   "scene",
	Short: "Launch the interactive overlay scene",
	Long: `Launch a terminal scene for exercising the notification overlay.

The scene posts sample notifications on demand and renders the toasts,
the tray, unread counts and running tasks as they evolve.

Key bindings:
  s/b/e       Post a simple, background or error notification
  p/P         Post a progress task (P: background)
  B           Post a barrage of mixed notifications
  m           Post ten simple notifications at once
  tab         Open or close the overlay
  enter       Activate the selected notification
  x           Dismiss the selected notification
  c           Cancel the selected task
  C           Clear the tray
  [/]         Previous/next tray page
  r           Cycle the room status
  ?           Show help
  q           Quit`,
	RunE: runScene,
}

func init() {
	rootCmd.AddCommand(sceneCmd)

	sceneCmd.Flags().BoolVar(&sceneOpts.desktop, "desktop", false,
		"Mirror toasts to the desktop notification server over D-Bus")
}

func runScene(cmd *cobra.Command, args []string) error {
	if err := config.EnsureDataDir(); err != nil {
		logger.Warn("failed to create data directory", "error", err)
	}

	gameSettings, err := settings.Load(settingsPath(), logger)
	if err != nil {
		logger.Warn("failed to load settings, using defaults", "error", err)
		gameSettings = settings.New(settingsPath(), logger)
	}

	watcher, err := settings.NewWatcher(gameSettings)
	if err != nil {
		logger.Warn("failed to create settings watcher", "error", err)
	} else if err := watcher.Start(); err != nil {
		logger.Warn("failed to watch settings", "error", err)
	} else {
		defer func() { _ = watcher.Stop() }()
	}

	opts := tui.RunOptions{
		Config:   cfg,
		Overlay:  overlay.NewManager(&cfg.Overlay, logger),
		Settings: gameSettings,
		Logger:   logger,
	}

	if sceneOpts.desktop || cfg.Desktop.Forward {
		fwd, err := dbus.NewForwarder(&cfg.Desktop, logger)
		if err != nil {
			logger.Warn("desktop forwarding unavailable", "error", err)
		} else {
			defer func() { _ = fwd.Stop() }()
			opts.Forwarder = fwd
		}
	}

	return tui.Run(opts)
}
