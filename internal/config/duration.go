package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration is a time span written either as a Go duration ("3200ms", "2s")
// or as a bare number of milliseconds ("3200"), the unit the overlay's
// timings are specified in. Negative values are rejected.
type Duration time.Duration

// ParseDuration parses s as a Duration.
func ParseDuration(s string) (Duration, error) {
	s = strings.TrimSpace(s)

	var d time.Duration
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		d = time.Duration(ms) * time.Millisecond
	} else if d, err = time.ParseDuration(s); err != nil {
		return 0, fmt.Errorf("invalid duration %q: use milliseconds or a unit like 200ms, 3s: %w", s, err)
	}

	if d < 0 {
		return 0, fmt.Errorf("invalid duration %q: cannot be negative", s)
	}
	return Duration(d), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML and YAML.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalText writes whole milliseconds as a bare number and anything finer
// as a Go duration string.
func (d Duration) MarshalText() ([]byte, error) {
	td := time.Duration(d)
	if td%time.Millisecond == 0 {
		return []byte(strconv.FormatInt(td.Milliseconds(), 10)), nil
	}
	return []byte(td.String()), nil
}

// Milliseconds returns the duration in whole milliseconds.
func (d Duration) Milliseconds() int {
	return int(time.Duration(d).Milliseconds())
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}
