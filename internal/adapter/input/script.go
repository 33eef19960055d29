package input

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/rhythmui/internal/config"
	"github.com/jmylchreest/rhythmui/internal/model"
)

// Action is what a script step does to the overlay.
type Action string

const (
	ActionPost     Action = "post"
	ActionOpen     Action = "open"
	ActionClose    Action = "close"
	ActionToggle   Action = "toggle"
	ActionDismiss  Action = "dismiss"
	ActionActivate Action = "activate"
	ActionCancel   Action = "cancel"
	ActionClear    Action = "clear"
)

var actions = []Action{
	ActionPost, ActionOpen, ActionClose, ActionToggle,
	ActionDismiss, ActionActivate, ActionCancel, ActionClear,
}

// Errors returned when parsing scripts.
var (
	ErrUnknownAction = errors.New("unknown action")
	ErrMissingRef    = errors.New("step requires a ref")
)

// Step is a single timed script instruction.
//
//	- at: 500ms
//	  action: post
//	  kind: simple
//	  text: Welcome!
//	  ref: hello
type Step struct {
	At     config.Duration `yaml:"at" json:"at"`
	Action Action          `yaml:"action" json:"action"`

	// Ref names a posted notification so later steps can target it.
	Ref string `yaml:"ref,omitempty" json:"ref,omitempty"`

	// Post fields
	Kind           string          `yaml:"kind,omitempty" json:"kind,omitempty"`
	Text           string          `yaml:"text,omitempty" json:"text,omitempty"`
	Progress       bool            `yaml:"progress,omitempty" json:"progress,omitempty"`
	CompletionText string          `yaml:"completion_text,omitempty" json:"completion_text,omitempty"`
	TimeToComplete config.Duration `yaml:"time_to_complete,omitempty" json:"time_to_complete,omitempty"`
}

// Script is an ordered list of steps.
type Script struct {
	Steps []Step
}

// ParseScript parses a YAML (or JSON) list of steps. Steps without an
// action are posts. Steps are ordered by time, keeping file order for ties.
func ParseScript(data []byte) (*Script, error) {
	var steps []Step
	if err := yaml.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}

	for i := range steps {
		s := &steps[i]
		if s.Action == "" {
			s.Action = ActionPost
		}
		s.Action = Action(strings.ToLower(string(s.Action)))
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	sort.SliceStable(steps, func(i, j int) bool {
		return steps[i].At < steps[j].At
	})

	return &Script{Steps: steps}, nil
}

func (s *Step) validate() error {
	if !slices.Contains(actions, s.Action) {
		return fmt.Errorf("%w: %s", ErrUnknownAction, s.Action)
	}

	switch s.Action {
	case ActionPost:
		if _, err := s.Notification(0); err != nil {
			return err
		}
	case ActionDismiss, ActionActivate, ActionCancel:
		if s.Ref == "" {
			return fmt.Errorf("%w: %s", ErrMissingRef, s.Action)
		}
	}
	return nil
}

// Notification builds the notification a post step describes.
// defaultTTC is used for progress steps without a time to complete.
func (s *Step) Notification(defaultTTC config.Duration) (*model.Notification, error) {
	kind := model.KindSimple
	if s.Kind != "" {
		found := false
		for k, name := range model.KindNames {
			if strings.EqualFold(name, s.Kind) {
				kind, found = k, true
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %s", model.ErrInvalidKind, s.Kind)
		}
	}

	var n *model.Notification
	switch {
	case s.Progress:
		ttc := s.TimeToComplete
		if ttc == 0 {
			ttc = defaultTTC
		}
		completion := s.CompletionText
		if completion == "" {
			completion = s.Text + " done"
		}
		if kind == model.KindBackground {
			n = model.NewBackgroundProgress(s.Text, completion, ttc.Duration())
		} else {
			n = model.NewProgress(s.Text, completion, ttc.Duration())
		}
	case kind == model.KindError:
		n = model.NewError(s.Text)
	case kind == model.KindBackground:
		n = model.NewBackground(s.Text)
	default:
		n = model.NewSimple(s.Text)
	}

	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n, nil
}
