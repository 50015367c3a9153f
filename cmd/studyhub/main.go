package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"studyhub/internal/bootstrap"
	statsdto "studyhub/internal/modules/stats/dto"
	"studyhub/internal/platform/config"
	"studyhub/internal/platform/logging"
)

type rootOptions struct {
	workspace string
	logLevel  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "studyhub",
		Short:         "Focus timer and study streak tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.workspace, "workspace", ".", "workspace directory holding notes and state")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug|info|warn|error|off); overrides STUDYHUB_LOG_LEVEL")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newStatsCmd(opts))
	root.AddCommand(newFocusCmd(opts))
	return root
}

func loadApp(opts *rootOptions) (*bootstrap.App, error) {
	cfg, err := config.New(opts.workspace)
	if err != nil {
		return nil, err
	}
	level := cfg.LogLevel
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	return bootstrap.New(cfg, logging.New(os.Stderr, level))
}

func closeApp(cmd *cobra.Command, app *bootstrap.App) {
	if err := app.Close(); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "close: %v\n", err)
	}
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run studyhub terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Log lines would tear the alt screen.
			if opts.logLevel == "" {
				opts.logLevel = "off"
			}
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer closeApp(cmd, app)
			return bootstrap.RunTUI(app)
		},
	}
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	stats := &cobra.Command{Use: "stats", Short: "Focus statistics and streak"}

	var asJSON bool
	show := &cobra.Command{
		Use:   "show",
		Short: "Show today's counters, streak and the last 7 days",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer closeApp(cmd, app)
			out, err := app.StatsCLI.Show(context.Background())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			printStats(cmd.OutOrStdout(), out)
			return nil
		},
	}
	show.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	var minutes float64
	record := &cobra.Command{
		Use:   "record --minutes <n>",
		Short: "Record a completed session without running the timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer closeApp(cmd, app)
			out, err := app.StatsCLI.Record(context.Background(), minutes)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session recorded: %d min today (%d sessions) streak=%d\n", out.TotalMinutesToday, out.SessionsToday, out.Streak)
			return nil
		},
	}
	record.Flags().Float64Var(&minutes, "minutes", 0, "session length in whole minutes")

	var notePath string
	export := &cobra.Command{
		Use:   "export --note <path>",
		Short: "Write the weekly summary into a managed block of a markdown note",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(notePath) == "" {
				return fmt.Errorf("--note is required")
			}
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer closeApp(cmd, app)
			out, err := app.StatsCLI.Export(context.Background(), notePath)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "stats exported: %s\n", out.Path)
			return nil
		},
	}
	export.Flags().StringVar(&notePath, "note", "", "markdown note path, relative to the workspace")

	stats.AddCommand(show, record, export)
	return stats
}

func newFocusCmd(opts *rootOptions) *cobra.Command {
	focus := &cobra.Command{Use: "focus", Short: "Focus timer lifecycle"}

	var label, goal string
	var planned int
	start := &cobra.Command{
		Use:   "start --label <text>",
		Short: "Start a focus session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(label) == "" {
				return fmt.Errorf("--label is required")
			}
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer closeApp(cmd, app)
			out, err := app.FocusCLI.Start(context.Background(), label, goal, planned)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "focus started: %s label=%q planned=%dmin at=%s\n", out.FocusID, out.Label, out.PlannedMinutes, out.StartedAt.Format(time.RFC3339))
			return nil
		},
	}
	start.Flags().StringVar(&label, "label", "", "what you are working on")
	start.Flags().StringVar(&goal, "goal", "", "goal for this session")
	start.Flags().IntVar(&planned, "planned", 25, "planned length in minutes (0 for open-ended)")

	var outcome, focusID string
	end := &cobra.Command{
		Use:   "end --outcome <text>",
		Short: "End the active focus session and record it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer closeApp(cmd, app)
			out, err := app.FocusCLI.End(context.Background(), focusID, outcome)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "focus ended: %s duration=%dmin today=%dmin streak=%d note=%s\n", out.FocusID, out.DurationMin, out.TotalMinutesToday, out.Streak, out.Path)
			return nil
		},
	}
	end.Flags().StringVar(&focusID, "focus-id", "", "optional focus id (defaults to active focus)")
	end.Flags().StringVar(&outcome, "outcome", "", "what got done")

	cancel := &cobra.Command{
		Use:   "cancel",
		Short: "Drop the active focus session without recording it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer closeApp(cmd, app)
			if err := app.FocusCLI.Cancel(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "focus cancelled")
			return nil
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the active focus session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer closeApp(cmd, app)
			active, err := app.FocusCLI.GetActive(context.Background())
			if err != nil {
				return err
			}
			elapsed := time.Since(active.StartedAt).Truncate(time.Second)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "focus active: %s label=%q elapsed=%s planned=%dmin\n", active.FocusID, active.Label, elapsed, active.PlannedMinutes)
			return nil
		},
	}

	var limit int
	history := &cobra.Command{
		Use:   "log",
		Short: "List logged focus sessions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer closeApp(cmd, app)
			items, err := app.FocusCLI.History(context.Background(), limit)
			if err != nil {
				return err
			}
			for _, item := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %3dmin  %s  %s\n", item.StartedAt.Format("2006-01-02 15:04"), item.DurationMin, item.Label, item.Outcome)
			}
			return nil
		},
	}
	history.Flags().IntVar(&limit, "limit", 20, "maximum entries (0 for all)")

	focus.AddCommand(start, end, cancel, status, history)
	return focus
}

func printStats(w io.Writer, out statsdto.StatsOutput) {
	_, _ = fmt.Fprintf(w, "today:   %s\n", out.Today)
	_, _ = fmt.Fprintf(w, "sessions: %d  minutes: %d  streak: %d\n", out.SessionsToday, out.TotalMinutesToday, out.Streak)
	for _, day := range out.Week {
		_, _ = fmt.Fprintf(w, "  %s  %4d min\n", day.Date, day.Minutes)
	}
	_, _ = fmt.Fprintf(w, "week:    %d min\n", out.WeekMinutes)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
