package scenario

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmylchreest/rhythmui/internal/adapter/input"
	"github.com/jmylchreest/rhythmui/internal/config"
	"github.com/jmylchreest/rhythmui/internal/model"
	"github.com/jmylchreest/rhythmui/internal/overlay"
)

// ErrUnknownRef is returned when a script step targets a ref that was
// never posted.
var ErrUnknownRef = errors.New("unknown notification ref")

// Options control a simulated session.
type Options struct {
	// Notifications posted before the clock starts.
	Simple             int
	Background         int
	Errors             int
	Progress           int
	BackgroundProgress int

	// Duration is how long to advance the clock. The clock always runs
	// at least until the last script step.
	Duration time.Duration

	// Tick is the clock step. Defaults to DefaultTick.
	Tick time.Duration

	// Open shows the overlay once the clock stops.
	Open bool
}

// DefaultTick is the clock step used when Options.Tick is zero.
const DefaultTick = 16 * time.Millisecond

// Runner drives an overlay through a simulated session.
type Runner struct {
	overlay   *overlay.Manager
	generator *Generator
	config    *config.OverlayConfig
	logger    *slog.Logger

	refs    map[string]*model.Notification
	elapsed time.Duration
}

// NewRunner creates a Runner for ov.
func NewRunner(ov *overlay.Manager, cfg *config.OverlayConfig, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		overlay:   ov,
		generator: NewGenerator(cfg.TimeToComplete.Duration()),
		config:    cfg,
		logger:    logger,
		refs:      make(map[string]*model.Notification),
	}
}

// Elapsed returns how much simulated time has passed.
func (r *Runner) Elapsed() time.Duration {
	return r.elapsed
}

// Ref returns the notification posted under ref.
func (r *Runner) Ref(ref string) (*model.Notification, bool) {
	n, ok := r.refs[ref]
	return n, ok
}

// Run posts the generated notifications, then advances the clock in ticks,
// applying script steps (which may be nil) as their time arrives.
func (r *Runner) Run(ctx context.Context, script *input.Script, opts Options) error {
	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultTick
	}

	if err := r.postGenerated(opts); err != nil {
		return err
	}

	var steps []input.Step
	end := opts.Duration
	if script != nil {
		steps = script.Steps
		if n := len(steps); n > 0 {
			end = max(end, steps[n-1].At.Duration())
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		for len(steps) > 0 && steps[0].At.Duration() <= r.elapsed {
			if err := r.apply(steps[0]); err != nil {
				return fmt.Errorf("step at %s: %w", steps[0].At.Duration(), err)
			}
			steps = steps[1:]
		}

		if r.elapsed >= end {
			break
		}

		dt := min(tick, end-r.elapsed)
		r.overlay.Advance(dt)
		r.elapsed += dt
	}

	if opts.Open {
		r.overlay.Show()
	}

	r.logger.Debug("simulation finished",
		"elapsed", r.elapsed,
		"generated", r.generator.Posted(),
		"unread", r.overlay.UnreadCount().Value(),
	)
	return nil
}

func (r *Runner) postGenerated(opts Options) error {
	batches := []struct {
		count int
		next  func() *model.Notification
	}{
		{opts.Simple, r.generator.Simple},
		{opts.Background, r.generator.Background},
		{opts.Errors, r.generator.Error},
		{opts.Progress, func() *model.Notification { return r.generator.Progress(false) }},
		{opts.BackgroundProgress, func() *model.Notification { return r.generator.Progress(true) }},
	}

	for _, b := range batches {
		for range b.count {
			if err := r.overlay.Post(b.next()); err != nil {
				return fmt.Errorf("failed to post: %w", err)
			}
		}
	}
	return nil
}

func (r *Runner) apply(step input.Step) error {
	r.logger.Debug("applying step", "at", step.At.Duration(), "action", step.Action, "ref", step.Ref)

	switch step.Action {
	case input.ActionPost:
		n, err := step.Notification(r.config.TimeToComplete)
		if err != nil {
			return err
		}
		if err := r.overlay.Post(n); err != nil {
			return err
		}
		if step.Ref != "" {
			r.refs[step.Ref] = n
		}
	case input.ActionOpen:
		r.overlay.Show()
	case input.ActionClose:
		r.overlay.Hide()
	case input.ActionToggle:
		r.overlay.Toggle()
	case input.ActionClear:
		r.overlay.ClearTray()
	case input.ActionDismiss, input.ActionActivate, input.ActionCancel:
		n, ok := r.refs[step.Ref]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownRef, step.Ref)
		}
		switch step.Action {
		case input.ActionCancel:
			return r.overlay.SetState(n, model.ProgressCancelled)
		default:
			return r.overlay.Dismiss(n, step.Action == input.ActionActivate)
		}
	}
	return nil
}
