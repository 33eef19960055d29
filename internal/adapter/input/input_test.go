package input

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/rhythmui/internal/config"
	"github.com/jmylchreest/rhythmui/internal/model"
)

const sampleScript = `
- at: 1s
  action: open
- at: 0
  kind: error
  text: Import failed!
  ref: failure
- at: 200ms
  kind: background
  text: Uploading to BSS...
  progress: true
  time_to_complete: 1500
  ref: upload
- at: 1s
  action: dismiss
  ref: failure
`

func TestParseScript(t *testing.T) {
	script, err := ParseScript([]byte(sampleScript))
	require.NoError(t, err)
	require.Len(t, script.Steps, 4)

	// Ordered by time, ties keep file order.
	assert.Equal(t, ActionPost, script.Steps[0].Action)
	assert.Equal(t, "failure", script.Steps[0].Ref)
	assert.Equal(t, 200*time.Millisecond, script.Steps[1].At.Duration())
	assert.Equal(t, ActionOpen, script.Steps[2].Action)
	assert.Equal(t, ActionDismiss, script.Steps[3].Action)
	assert.Equal(t, 1500*time.Millisecond, script.Steps[1].TimeToComplete.Duration())
}

func TestParseScript_JSON(t *testing.T) {
	data := `[{"at": "100ms", "text": "Welcome!"}, {"at": "2s", "action": "TOGGLE"}]`
	script, err := ParseScript([]byte(data))
	require.NoError(t, err)
	require.Len(t, script.Steps, 2)
	assert.Equal(t, ActionPost, script.Steps[0].Action)
	assert.Equal(t, ActionToggle, script.Steps[1].Action)
}

func TestParseScript_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"unknown action", "- action: explode", ErrUnknownAction},
		{"missing ref", "- action: activate", ErrMissingRef},
		{"empty text", "- kind: simple", model.ErrEmptyText},
		{"bad kind", "- kind: loud\n  text: hi", model.ErrInvalidKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript([]byte(tt.data))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := ParseScript([]byte("not: [valid"))
	assert.Error(t, err)
}

func TestStep_Notification(t *testing.T) {
	step := Step{Kind: "Background", Text: "Downloading beatmap", Progress: true}
	n, err := step.Notification(0)
	require.NoError(t, err)
	assert.Equal(t, model.KindBackground, n.Kind)
	assert.False(t, n.Important)
	require.True(t, n.IsProgress())
	assert.Equal(t, "Downloading beatmap done", n.Progress.CompletionText)

	step = Step{Text: "Saving", Progress: true, CompletionText: "Saved!"}
	n, err = step.Notification(config.Duration(3 * time.Second))
	require.NoError(t, err)
	assert.True(t, n.Important)
	assert.Equal(t, 3*time.Second, n.Progress.TimeToComplete)

	step = Step{Kind: "error", Text: "Oops"}
	n, err = step.Notification(0)
	require.NoError(t, err)
	assert.Equal(t, model.KindError, n.Kind)
}

func TestNewAdapter(t *testing.T) {
	a, err := NewAdapter("-")
	require.NoError(t, err)
	assert.Equal(t, "stdin", a.Name())

	a, err = NewAdapter("script.yaml")
	require.NoError(t, err)
	assert.Equal(t, "file", a.Name())

	_, err = NewAdapter("")
	var adapterErr *AdapterError
	assert.ErrorAs(t, err, &adapterErr)
}

func TestStdinAdapter_Import(t *testing.T) {
	a := NewStdinAdapterWithReader(strings.NewReader(sampleScript))
	script, err := a.Import(context.Background())
	require.NoError(t, err)
	assert.Len(t, script.Steps, 4)

	a = NewStdinAdapterWithReader(strings.NewReader("- action: nope"))
	_, err = a.Import(context.Background())
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestFileAdapter_Import(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleScript), 0644))

	script, err := NewFileAdapter(path).Import(context.Background())
	require.NoError(t, err)
	assert.Len(t, script.Steps, 4)

	_, err = NewFileAdapter(filepath.Join(t.TempDir(), "missing.yaml")).Import(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewFileAdapter(path).Import(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
