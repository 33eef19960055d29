// Package settings manages the persisted, enumerated game settings.
//
// Settings live in a flat TOML file keyed by setting name. Every key has a
// typed default and optional constraints; values read from disk or set by
// callers are checked and normalised against them.
package settings

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// Errors returned by setting operations.
var (
	ErrUnknownKey   = errors.New("unknown setting")
	ErrInvalidValue = errors.New("invalid setting value")
)

// Change describes a setting value change.
type Change struct {
	Key Key
	Old any
	New any
}

type subscription struct {
	id int
	fn func(Change)
}

// Manager holds the current value of every setting. It is safe for
// concurrent use; subscribers are called without the lock held.
type Manager struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger

	values map[Key]any
	subs   map[Key][]subscription
	nextID int
}

// New creates a manager holding default values, persisted to path.
func New(path string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		path:   path,
		logger: logger,
		values: make(map[Key]any, len(definitions)),
		subs:   make(map[Key][]subscription),
	}
	for _, d := range definitions {
		m.values[d.Key] = d.Default
	}

	// Remembering the password implies remembering the username, and
	// forgetting the username forgets the password.
	m.Subscribe(SavePassword, func(c Change) {
		if enabled, _ := c.New.(bool); enabled {
			_ = m.Set(SaveUsername, true)
		}
	})
	m.Subscribe(SaveUsername, func(c Change) {
		if enabled, _ := c.New.(bool); !enabled {
			_ = m.Set(SavePassword, false)
		}
	})

	return m
}

// Path returns the file the settings are persisted to.
func (m *Manager) Path() string {
	return m.path
}

// Get returns the current value of key.
func (m *Manager) Get(key Key) (any, error) {
	if _, ok := Lookup(key); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

// Bool returns a boolean setting, or false if key is not boolean.
func (m *Manager) Bool(key Key) bool {
	v, _ := m.Get(key)
	b, _ := v.(bool)
	return b
}

// Int returns an integer setting, or 0 if key is not an integer.
func (m *Manager) Int(key Key) int {
	v, _ := m.Get(key)
	i, _ := v.(int)
	return i
}

// Float returns a float setting, or 0 if key is not a float.
func (m *Manager) Float(key Key) float64 {
	v, _ := m.Get(key)
	f, _ := v.(float64)
	return f
}

// String returns a string setting, or "" if key is not a string.
func (m *Manager) String(key Key) string {
	v, _ := m.Get(key)
	s, _ := v.(string)
	return s
}

// Set type-checks and normalises value, then stores it. Subscribers are
// notified when the stored value changes.
func (m *Manager) Set(key Key, value any) error {
	def, ok := Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	v, err := normalise(def, value)
	if err != nil {
		return err
	}
	m.store(key, v)
	return nil
}

// SetString parses raw according to the setting's type and sets it.
func (m *Manager) SetString(key Key, raw string) error {
	def, ok := Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	var value any
	var err error
	switch def.Type {
	case TypeBool:
		value, err = strconv.ParseBool(raw)
	case TypeInt:
		value, err = strconv.Atoi(raw)
	case TypeFloat:
		value, err = strconv.ParseFloat(raw, 64)
	default:
		value = raw
	}
	if err != nil {
		return fmt.Errorf("%w: %s expects a %s: %w", ErrInvalidValue, key, def.Type, err)
	}
	return m.Set(key, value)
}

// Reset restores key to its default.
func (m *Manager) Reset(key Key) error {
	def, ok := Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	m.store(key, def.Default)
	return nil
}

// IsDefault returns true if key currently holds its default value.
func (m *Manager) IsDefault(key Key) bool {
	def, ok := Lookup(key)
	if !ok {
		return false
	}
	v, _ := m.Get(key)
	return v == def.Default
}

// Subscribe registers fn to be called when key changes. The returned
// function removes the subscription.
func (m *Manager) Subscribe(key Key, fn func(Change)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	id := m.nextID
	m.subs[key] = append(m.subs[key], subscription{id: id, fn: fn})

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		current := m.subs[key]
		next := make([]subscription, 0, len(current))
		for _, s := range current {
			if s.id != id {
				next = append(next, s)
			}
		}
		m.subs[key] = next
	}
}

// LoggableState returns every setting formatted as a string, excluding
// private settings.
func (m *Manager) LoggableState() map[Key]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[Key]string, len(m.values))
	for _, d := range definitions {
		if d.Private {
			continue
		}
		out[d.Key] = Format(m.values[d.Key])
	}
	return out
}

// Migrate upgrades values written by older releases. Versions are of the
// form "2022.103.0"; development and fresh installs are left alone.
func (m *Manager) Migrate() {
	version := m.String(Version)
	if len(version) < 6 {
		return
	}

	pieces := strings.Split(version, ".")
	if len(pieces) < 2 {
		return
	}
	year, err := strconv.Atoi(pieces[0])
	if err != nil {
		return
	}
	monthDay, err := strconv.Atoi(pieces[1])
	if err != nil {
		return
	}

	if year*10000+monthDay < 20220103 && !m.Bool(PositionalHitsounds) {
		m.logger.Info("migrating positional hitsounds", "version", version)
		_ = m.Set(PositionalHitsoundsLevel, 0.0)
	}
}

// store sets key without validation and notifies subscribers on change.
func (m *Manager) store(key Key, v any) {
	m.mu.Lock()
	old := m.values[key]
	if old == v {
		m.mu.Unlock()
		return
	}
	m.values[key] = v
	subs := m.subs[key]
	m.mu.Unlock()

	m.logger.Debug("setting changed", "key", string(key))
	c := Change{Key: key, Old: old, New: v}
	for _, s := range subs {
		s.fn(c)
	}
}

// Format renders a setting value the way it is shown to users.
func Format(v any) string {
	switch t := v.(type) {
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case string:
		return t
	default:
		return fmt.Sprint(v)
	}
}

// normalise converts value to the setting's type and applies constraints.
func normalise(def Definition, value any) (any, error) {
	invalid := func() error {
		return fmt.Errorf("%w: %s expects a %s, got %T", ErrInvalidValue, def.Key, def.Type, value)
	}

	switch def.Type {
	case TypeBool:
		b, ok := value.(bool)
		if !ok {
			return nil, invalid()
		}
		return b, nil

	case TypeString:
		s, ok := value.(string)
		if !ok {
			return nil, invalid()
		}
		if len(def.Choices) > 0 && !slices.Contains(def.Choices, s) {
			return nil, fmt.Errorf("%w: %s must be one of %s", ErrInvalidValue, def.Key, strings.Join(def.Choices, ", "))
		}
		return s, nil

	case TypeInt:
		var f float64
		switch n := value.(type) {
		case int:
			f = float64(n)
		case int64:
			f = float64(n)
		case float64:
			if n != math.Trunc(n) {
				return nil, invalid()
			}
			f = n
		default:
			return nil, invalid()
		}
		return int(constrain(def, f)), nil

	case TypeFloat:
		var f float64
		switch n := value.(type) {
		case float64:
			f = n
		case float32:
			f = float64(n)
		case int:
			f = float64(n)
		case int64:
			f = float64(n)
		default:
			return nil, invalid()
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: %s must be finite", ErrInvalidValue, def.Key)
		}
		return constrain(def, f), nil
	}

	return nil, invalid()
}

func constrain(def Definition, f float64) float64 {
	if def.Precision > 0 {
		f = math.Round(f/def.Precision) * def.Precision
		// Trim float noise introduced by the multiply, e.g. 0.30000000000000004
		f, _ = strconv.ParseFloat(strconv.FormatFloat(f, 'f', decimals(def.Precision), 64), 64)
	}
	if def.HasRange {
		f = max(def.Min, min(def.Max, f))
	}
	return f
}

// decimals returns the number of decimal places a precision step needs.
func decimals(precision float64) int {
	s := strconv.FormatFloat(precision, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}
