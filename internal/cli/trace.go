package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/roach88/zkarith/internal/config"
	"github.com/roach88/zkarith/internal/engine"
	"github.com/roach88/zkarith/internal/event"
	"github.com/roach88/zkarith/internal/manifest"
	"github.com/roach88/zkarith/internal/output"
	"github.com/roach88/zkarith/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Out        string
	Config     string
	Database   string
	Strict     bool
	NoProgress bool

	// IDs overrides the conflation id generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDs engine.IDGenerator
}

// TraceSummary is the result of one trace run.
type TraceSummary struct {
	Conflation string              `json:"conflation"`
	Events     uint64              `json:"events"`
	Rows       int                 `json:"rows"`
	Dir        string              `json:"dir"`
	Modules    []manifest.Entry    `json:"modules"`
	Overflows  []manifest.Overflow `json:"overflows,omitempty"`
	Recorded   bool                `json:"recorded,omitempty"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	return newTraceCommand(&TraceOptions{RootOptions: rootOpts})
}

func newTraceCommand(opts *TraceOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace <events-file>",
		Short: "Run one conflation and write its traces",
		Long: `Run the events of a YAML or JSON file as one conflation.

Every enabled module's trace is written to <out>/<module>.bin together with
manifest.json listing row counts and digests. With --db the conflation is
also recorded in the history database.

Examples:
  zkarith trace events.yaml --out ./traces
  zkarith trace events.yaml --config zkarith.yaml --db history.db --strict`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "output directory (overrides config output.dir)")
	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "path to config file")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite history database (overrides config store.path)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "fail when a module exceeds its row limit")
	cmd.Flags().BoolVar(&opts.NoProgress, "no-progress", false, "hide the progress bar")

	return cmd
}

func runTrace(opts *TraceOptions, eventsPath string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	cfg, err := loadTraceConfig(opts, cmd)
	if err != nil {
		return f.Fail(ExitCommandError, "invalid config", err)
	}

	file, err := event.LoadFile(eventsPath)
	if err != nil {
		return f.Fail(ExitCommandError, "failed to load events", err)
	}
	f.VerboseLog("Loaded %d event(s) from %s", len(file.Events), eventsPath)

	ids := opts.IDs
	if ids == nil {
		ids = engine.UUIDv7Generator{}
	}
	eng, err := engine.New(
		engine.WithLimits(engine.Limits(cfg.Limits)),
		engine.WithModules(cfg.Modules...),
		engine.WithIDGenerator(ids),
	)
	if err != nil {
		return f.Fail(ExitCommandError, "failed to build engine", err)
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := eng.Process(ctx, file.Events); err != nil {
		return f.Fail(ExitFailure, "conflation failed", err)
	}
	res, err := eng.Commit()
	if err != nil {
		return f.Fail(ExitFailure, "commit failed", err)
	}
	overflows := eng.CheckLimits(res.Traces)

	var bar *progressbar.ProgressBar
	if !opts.NoProgress && !f.JSON() {
		bar = progressbar.NewOptions(len(res.Traces),
			progressbar.OptionSetWriter(f.GetErrWriter()),
			progressbar.OptionSetDescription("writing traces"),
			progressbar.OptionClearOnFinish(),
		)
	}
	m, err := output.WriteDir(ctx, cfg.Output.Dir, res, overflows, output.Options{
		Parallelism: cfg.Output.Parallelism,
		OnWritten: func(e manifest.Entry) {
			if bar != nil {
				_ = bar.Add(1)
			}
			f.VerboseLog("Wrote %s (%d rows)", e.File, e.Rows)
		},
	})
	if err != nil {
		return f.Fail(ExitFailure, "failed to write traces", err)
	}
	if bar != nil {
		_ = bar.Finish()
	}

	summary := TraceSummary{
		Conflation: m.Conflation,
		Events:     m.Events,
		Rows:       m.Rows(),
		Dir:        cfg.Output.Dir,
		Modules:    m.Modules,
		Overflows:  m.Overflows,
	}

	if cfg.Store != nil {
		recorded, err := recordConflation(ctx, cfg.Store.Path, m, cfg.Output.Dir)
		if err != nil {
			return f.Fail(ExitCommandError, "failed to record conflation", err)
		}
		summary.Recorded = recorded
	}

	if cfg.Strict && len(overflows) > 0 {
		limitErr := engine.NewLimitError(res.ID, overflows)
		_ = f.Error(string(limitErr.Code), limitErr.Message, summary)
		return WrapExitError(ExitFailure, "row limits exceeded", limitErr)
	}

	slog.Info("conflation written", "conflation", m.Conflation, "dir", cfg.Output.Dir, "rows", summary.Rows)
	return f.Success(summary, func(w io.Writer) { printTraceSummary(w, summary) })
}

// loadTraceConfig reads the config file, if any, and applies flag overrides.
func loadTraceConfig(opts *TraceOptions, cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return nil, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("out") {
		cfg.Output.Dir = opts.Out
	}
	if flags.Changed("db") {
		cfg.Store = &config.Store{Path: opts.Database}
	}
	if flags.Changed("strict") {
		cfg.Strict = opts.Strict
	}
	return cfg, nil
}

func recordConflation(ctx context.Context, path string, m *manifest.Manifest, dir string) (bool, error) {
	st, err := store.Open(path)
	if err != nil {
		return false, err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	return st.WriteConflation(ctx, m, dir)
}

func printTraceSummary(w io.Writer, s TraceSummary) {
	fmt.Fprintf(w, "Conflation %s: %d event(s), %d row(s) in %s\n\n", s.Conflation, s.Events, s.Rows, s.Dir)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MODULE\tROWS\tCOLUMNS\tDIGEST")
	for _, e := range s.Modules {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", e.Module, e.Rows, e.Columns, shortDigest(e.Digest))
	}
	tw.Flush()
	for _, o := range s.Overflows {
		fmt.Fprintf(w, "\n! %s: %d rows over limit %d", o.Module, o.Rows, o.Limit)
	}
	if len(s.Overflows) > 0 {
		fmt.Fprintln(w)
	}
	if s.Recorded {
		fmt.Fprintln(w, "\nRecorded in history database.")
	}
}

func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	return d
}
