package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/zkarith/internal/manifest"
	"github.com/roach88/zkarith/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database   string
	Conflation string
}

// ConflationDetail is one conflation with its module traces.
type ConflationDetail struct {
	store.Conflation
	Modules   []manifest.Entry    `json:"modules"`
	Overflows []manifest.Overflow `json:"overflows"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded conflations",
		Long: `List the conflations recorded in a history database, oldest first.
--conflation ID shows one conflation's module traces and limit overflows.

Examples:
  zkarith history --db history.db
  zkarith history --db history.db --conflation 0190f5c2-... --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Conflation, "conflation", "", "show one conflation in detail")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// A listing must not create an empty database.
	if _, err := os.Stat(opts.Database); err != nil {
		return f.Fail(ExitCommandError, "database not found", err)
	}
	st, err := store.Open(opts.Database)
	if err != nil {
		return f.Fail(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	if opts.Conflation != "" {
		return showConflation(ctx, f, st, opts.Conflation)
	}

	list, err := st.ListConflations(ctx)
	if err != nil {
		return f.Fail(ExitCommandError, "failed to list conflations", err)
	}
	return f.Success(list, func(w io.Writer) {
		if len(list) == 0 {
			fmt.Fprintln(w, "No conflations recorded.")
			return
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "SEQ\tCONFLATION\tEVENTS\tROWS\tDIR")
		for _, c := range list {
			fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\n", c.Seq, c.ID, c.Events, c.Rows, c.OutDir)
		}
		tw.Flush()
	})
}

func showConflation(ctx context.Context, f *OutputFormatter, st *store.Store, id string) error {
	c, err := st.ReadConflation(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return f.Fail(ExitFailure, "unknown conflation", err)
	}
	if err != nil {
		return f.Fail(ExitCommandError, "failed to read conflation", err)
	}
	modules, err := st.ReadModuleTraces(ctx, id)
	if err != nil {
		return f.Fail(ExitCommandError, "failed to read module traces", err)
	}
	overflows, err := st.ReadOverflows(ctx, id)
	if err != nil {
		return f.Fail(ExitCommandError, "failed to read overflows", err)
	}

	detail := ConflationDetail{Conflation: c, Modules: modules, Overflows: overflows}
	return f.Success(detail, func(w io.Writer) {
		fmt.Fprintf(w, "Conflation %s (seq %d): %d event(s), %d row(s) in %s\n", c.ID, c.Seq, c.Events, c.Rows, c.OutDir)
		fmt.Fprintf(w, "Manifest digest: %s\n\n", c.ManifestDigest)
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "MODULE\tROWS\tCOLUMNS\tBYTES")
		for _, e := range modules {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", e.Module, e.Rows, e.Columns, e.Bytes)
		}
		tw.Flush()
		for _, o := range overflows {
			fmt.Fprintf(w, "! %s: %d rows over limit %d\n", o.Module, o.Rows, o.Limit)
		}
	})
}
