package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/rhythmui/internal/settings"
)

var settingsOpts struct {
	format string
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect and change game settings",
	Long: `Inspect and change the persisted game settings.

Examples:
  # List every setting (private ones are hidden)
  rhythmui settings list

  # Change a value; ranged values are clamped and rounded
  rhythmui settings set DimLevel 0.85

  # Restore the default
  rhythmui settings reset DimLevel`,
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List settings and their current values",
	Args:  cobra.NoArgs,
	RunE:  runSettingsList,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting and save",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset <key>",
	Short: "Restore one setting to its default and save",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsReset,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsListCmd, settingsGetCmd, settingsSetCmd, settingsResetCmd)

	settingsListCmd.Flags().StringVarP(&settingsOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml)")
}

func loadSettings() (*settings.Manager, error) {
	m, err := settings.Load(settingsPath(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return m, nil
}

func runSettingsList(cmd *cobra.Command, args []string) error {
	m, err := loadSettings()
	if err != nil {
		return err
	}
	state := m.LoggableState()

	switch strings.ToLower(settingsOpts.format) {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(state)
	case "yaml":
		encoder := yaml.NewEncoder(os.Stdout)
		encoder.SetIndent(2)
		defer func() { _ = encoder.Close() }()
		return encoder.Encode(state)
	}

	for _, key := range settings.Keys() {
		value, ok := state[key]
		if !ok {
			continue
		}
		marker := " "
		if !m.IsDefault(key) {
			marker = "*"
		}
		fmt.Printf("%s %-26s %s\n", marker, key, value)
	}
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	m, err := loadSettings()
	if err != nil {
		return err
	}
	v, err := m.Get(settings.Key(args[0]))
	if err != nil {
		return err
	}
	fmt.Println(settings.Format(v))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	m, err := loadSettings()
	if err != nil {
		return err
	}
	key := settings.Key(args[0])
	if err := m.SetString(key, args[1]); err != nil {
		return err
	}
	return saveSettings(m, key)
}

func runSettingsReset(cmd *cobra.Command, args []string) error {
	m, err := loadSettings()
	if err != nil {
		return err
	}
	key := settings.Key(args[0])
	if err := m.Reset(key); err != nil {
		return err
	}
	return saveSettings(m, key)
}

func saveSettings(m *settings.Manager, key settings.Key) error {
	if err := m.Save(); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	v, _ := m.Get(key)
	fmt.Printf("%s = %s\n", key, settings.Format(v))
	return nil
}
