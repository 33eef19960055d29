package input

import (
	"bufio"
	"context"
	"io"
	"os"
)

// StdinAdapter reads a script from standard input.
type StdinAdapter struct {
	reader io.Reader
}

// NewStdinAdapter creates a new StdinAdapter reading from os.Stdin.
func NewStdinAdapter() *StdinAdapter {
	return &StdinAdapter{reader: os.Stdin}
}

// NewStdinAdapterWithReader creates a new StdinAdapter with a custom reader.
func NewStdinAdapterWithReader(r io.Reader) *StdinAdapter {
	return &StdinAdapter{reader: r}
}

// Name returns the adapter identifier.
func (a *StdinAdapter) Name() string {
	return "stdin"
}

// Import reads a YAML or JSON script from standard input.
func (a *StdinAdapter) Import(ctx context.Context) (*Script, error) {
	scanner := bufio.NewScanner(a.reader)
	const maxSize = 10 * 1024 * 1024 // 10MB max
	scanner.Buffer(make([]byte, 64*1024), maxSize)

	var data []byte
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data = append(data, scanner.Bytes()...)
		data = append(data, '\n')
	}

	if err := scanner.Err(); err != nil {
		return nil, &AdapterError{
			Source:  "stdin",
			Message: "failed to read stdin",
			Err:     err,
		}
	}

	script, err := ParseScript(data)
	if err != nil {
		return nil, &AdapterError{Source: "stdin", Message: "invalid script", Err: err}
	}
	return script, nil
}

// FileAdapter reads a script from a file.
type FileAdapter struct {
	path string
}

// NewFileAdapter creates a FileAdapter for path.
func NewFileAdapter(path string) *FileAdapter {
	return &FileAdapter{path: path}
}

// Name returns the adapter identifier.
func (a *FileAdapter) Name() string {
	return "file"
}

// Import reads a YAML or JSON script from the file.
func (a *FileAdapter) Import(ctx context.Context) (*Script, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(a.path)
	if err != nil {
		return nil, &AdapterError{Source: a.path, Message: "failed to read script", Err: err}
	}

	script, err := ParseScript(data)
	if err != nil {
		return nil, &AdapterError{Source: a.path, Message: "invalid script", Err: err}
	}
	return script, nil
}
