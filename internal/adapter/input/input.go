// Package input provides input adapters that load scripted overlay
// scenarios.
package input

import (
	"context"
)

// InputAdapter loads a scenario from a source.
type InputAdapter interface {
	// Name returns the adapter identifier (e.g., "file", "stdin").
	Name() string

	// Import reads and parses the scenario.
	Import(ctx context.Context) (*Script, error)
}

// NewAdapter creates an InputAdapter for source: "-" or "stdin" reads
// standard input, anything else is a file path.
func NewAdapter(source string) (InputAdapter, error) {
	switch source {
	case "":
		return nil, &AdapterError{
			Source:  source,
			Message: "no script source given",
		}
	case "-", "stdin":
		return NewStdinAdapter(), nil
	default:
		return NewFileAdapter(source), nil
	}
}

// AdapterError represents an adapter-related error.
type AdapterError struct {
	Source  string
	Message string
	Err     error
}

func (e *AdapterError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}
