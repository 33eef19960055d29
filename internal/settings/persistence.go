package settings

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Load creates a manager for path, reads any existing values and runs
// migrations. A missing file yields defaults.
func Load(path string, logger *slog.Logger) (*Manager, error) {
	m := New(path, logger)
	if err := m.Reload(); err != nil {
		return nil, err
	}
	m.Migrate()
	return m, nil
}

// Reload re-reads the settings file. Keys absent from the file return to
// their defaults, invalid values fall back to defaults and unknown keys are
// ignored.
func (m *Manager) Reload() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read settings file: %w", err)
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse settings file: %w", err)
	}

	for name := range raw {
		if _, ok := Lookup(Key(name)); !ok {
			m.logger.Warn("ignoring unknown setting", "key", name, "file", m.path)
		}
	}

	for _, d := range definitions {
		value, present := raw[string(d.Key)]
		if !present {
			m.store(d.Key, d.Default)
			continue
		}
		v, err := normalise(d, value)
		if err != nil {
			m.logger.Warn("invalid setting, using default", "key", string(d.Key), "error", err)
			v = d.Default
		}
		m.store(d.Key, v)
	}

	m.logger.Debug("loaded settings", "file", m.path)
	return nil
}

// Save writes every setting to the settings file atomically.
func (m *Manager) Save() error {
	m.mu.Lock()
	out := make(map[string]any, len(m.values))
	for k, v := range m.values {
		out[string(k)] = v
	}
	m.mu.Unlock()

	data, err := toml.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0700); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	// Write atomically via temp file
	tmpPath := m.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := os.Rename(tmpPath, m.path); err != nil {
		return fmt.Errorf("failed to replace settings file: %w", err)
	}
	return nil
}
