package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/rhythmui/internal/adapter/input"
	"github.com/jmylchreest/rhythmui/internal/adapter/output"
	"github.com/jmylchreest/rhythmui/internal/core"
	"github.com/jmylchreest/rhythmui/internal/overlay"
	"github.com/jmylchreest/rhythmui/internal/scenario"
)

var simulateOpts struct {
	// Generated notifications
	simple     int
	background int
	errors     int
	progress   int
	bgProgress int

	// Clock options
	script   string
	duration time.Duration
	tick     time.Duration
	open     bool

	// Selection options
	list   string
	filter string
	search string
	limit  int

	// Sort options
	sortBy    string
	sortOrder string

	// Output options
	format   string
	field    string
	template string
	selectID string
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the overlay headlessly and report its state",
	Long: `Post notifications into a fresh overlay, advance its clock and print
the resulting state.

Notifications can be generated from the sample set (--simple, --error, ...)
or played from a YAML/JSON script (--script, "-" for stdin). Scripts are
lists of timed steps:

  - at: 0
    kind: error
    text: Import failed!
    ref: failure
  - at: 500ms
    text: Uploading to BSS...
    progress: true
    time_to_complete: 3s
  - at: 1s
    action: dismiss
    ref: failure

Examples:
  # Five toasts, four seconds later
  rhythmui simulate --simple 5 --duration 4s

  # Unseen errors in the tray as JSON
  rhythmui simulate --error 3 --background 2 --duration 4s --filter read=false -f json

  # Run a script and list the remaining tasks
  rhythmui simulate --script session.yaml --list progressing`,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	// Generation flags
	simulateCmd.Flags().IntVar(&simulateOpts.simple, "simple", 0,
		"Number of simple notifications to post")
	simulateCmd.Flags().IntVar(&simulateOpts.background, "background", 0,
		"Number of background notifications to post")
	simulateCmd.Flags().IntVar(&simulateOpts.errors, "error", 0,
		"Number of error notifications to post")
	simulateCmd.Flags().IntVar(&simulateOpts.progress, "progress", 0,
		"Number of progress tasks to post")
	simulateCmd.Flags().IntVar(&simulateOpts.bgProgress, "bg-progress", 0,
		"Number of background progress tasks to post")

	// Clock flags
	simulateCmd.Flags().StringVar(&simulateOpts.script, "script", "",
		"Script of timed steps to play (file path, or - for stdin)")
	simulateCmd.Flags().DurationVarP(&simulateOpts.duration, "duration", "d", 0,
		"How long to advance the clock")
	simulateCmd.Flags().DurationVar(&simulateOpts.tick, "tick", 0,
		"Clock step (default: scene tick interval)")
	simulateCmd.Flags().BoolVar(&simulateOpts.open, "open", false,
		"Open the overlay once the clock stops")

	// Selection flags
	simulateCmd.Flags().StringVar(&simulateOpts.list, "list", "all",
		"Notifications to list (toasts, tray, progressing, all)")
	simulateCmd.Flags().StringVar(&simulateOpts.filter, "filter", "",
		"Filter expression (e.g., kind=error,read=false)")
	simulateCmd.Flags().StringVarP(&simulateOpts.search, "search", "s", "",
		"Search in notification text")
	simulateCmd.Flags().IntVarP(&simulateOpts.limit, "limit", "n", 0,
		"Maximum number of notifications to show (0=unlimited)")

	// Sort flags
	simulateCmd.Flags().StringVar(&simulateOpts.sortBy, "sort", "posted",
		"Sort by field (posted, kind, text, progress)")
	simulateCmd.Flags().StringVar(&simulateOpts.sortOrder, "order", "desc",
		"Sort order (asc, desc)")

	// Output flags
	simulateCmd.Flags().StringVarP(&simulateOpts.format, "format", "f", "plain",
		"Output format (plain, dmenu, json, yaml, ids)")
	simulateCmd.Flags().StringVar(&simulateOpts.field, "field", "",
		"Output a single field of the selected notification (id, text, kind, state, progress, read)")
	simulateCmd.Flags().StringVar(&simulateOpts.template, "template", "",
		"Custom Go template for plain/dmenu output")
	simulateCmd.Flags().StringVar(&simulateOpts.selectID, "select", "",
		"Select one notification by 1-based index, ID or dmenu line")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var script *input.Script
	if simulateOpts.script != "" {
		adapter, err := input.NewAdapter(simulateOpts.script)
		if err != nil {
			return fmt.Errorf("failed to create adapter: %w", err)
		}
		script, err = adapter.Import(ctx)
		if err != nil {
			return fmt.Errorf("failed to load script: %w", err)
		}
		logger.Debug("loaded script", "source", adapter.Name(), "steps", len(script.Steps))
	}

	tick := simulateOpts.tick
	if tick <= 0 {
		tick = cfg.Scene.TickInterval.Duration()
	}

	ov := overlay.NewManager(&cfg.Overlay, logger)
	runner := scenario.NewRunner(ov, &cfg.Overlay, logger)
	err := runner.Run(ctx, script, scenario.Options{
		Simple:             simulateOpts.simple,
		Background:         simulateOpts.background,
		Errors:             simulateOpts.errors,
		Progress:           simulateOpts.progress,
		BackgroundProgress: simulateOpts.bgProgress,
		Duration:           simulateOpts.duration,
		Tick:               tick,
		Open:               simulateOpts.open,
	})
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	snapshot := ov.Snapshot()
	views, err := selectViews(snapshot)
	if err != nil {
		return err
	}

	if simulateOpts.selectID != "" {
		return handleSelect(snapshot, views)
	}

	return createFormatter().Format(os.Stdout, output.NewReport(snapshot, views))
}

// selectViews picks, filters and sorts the notifications to output.
func selectViews(s overlay.Snapshot) ([]overlay.NotificationView, error) {
	var views []overlay.NotificationView
	switch strings.ToLower(simulateOpts.list) {
	case "toasts":
		views = s.Toasts
	case "tray":
		views = s.Tray
	case "progressing", "tasks":
		views = s.Progressing
	case "all", "":
		views = append(append(views, s.Toasts...), s.Tray...)
	default:
		return nil, fmt.Errorf("invalid list %q (use toasts, tray, progressing, all)", simulateOpts.list)
	}

	expr, err := core.ParseFilter(simulateOpts.filter)
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}

	views = core.Search(views, simulateOpts.search)
	core.Sort(views, core.SortOptions{
		Field: core.ParseSortField(simulateOpts.sortBy),
		Order: core.ParseSortOrder(simulateOpts.sortOrder),
	})
	return core.Filter(views, expr, simulateOpts.limit), nil
}

// handleSelect outputs a single notification.
func handleSelect(s overlay.Snapshot, views []overlay.NotificationView) error {
	ref := parseDmenuSelection(simulateOpts.selectID)
	v := core.Lookup(views, ref)
	if v == nil {
		return fmt.Errorf("notification %s not found", simulateOpts.selectID)
	}

	if simulateOpts.field != "" {
		fmt.Println(output.FormatField(v, simulateOpts.field))
		return nil
	}

	return createFormatter().Format(os.Stdout, output.NewReport(s, []overlay.NotificationView{*v}))
}

// parseDmenuSelection extracts the index from a dmenu line such as
// "1 | 5 minutes ago | error | Import failed!". Anything else is returned
// as-is.
func parseDmenuSelection(selection string) string {
	selection = strings.TrimSpace(selection)
	if idx, _, found := strings.Cut(selection, "|"); found {
		return strings.TrimSpace(idx)
	}
	return selection
}

// createFormatter creates the output formatter based on options.
func createFormatter() output.Formatter {
	opts := output.DefaultFormatterOptions()
	opts.Template = simulateOpts.template
	return output.NewFormatter(output.FormatType(strings.ToLower(simulateOpts.format)), opts)
}
