package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/zkarith/internal/engine"
)

// ModuleColumns is one module's column layout.
type ModuleColumns struct {
	Module  string       `json:"module"`
	Columns []ColumnInfo `json:"columns"`
}

// ColumnInfo is one column header.
type ColumnInfo struct {
	Name  string `json:"name"`
	Width int    `json:"width"`
}

// NewColumnsCommand creates the columns command.
func NewColumnsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "columns [module]",
		Short: "Print module column layouts",
		Long: `Print the column headers (name and byte width) of every module, or of
one module, in trace file order.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runColumns(rootOpts, args, cmd)
		},
	}
}

func runColumns(opts *RootOptions, args []string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	names := engine.ModuleNames()
	if len(args) == 1 {
		names = args
	}

	var layouts []ModuleColumns
	for _, name := range names {
		headers, err := engine.Layout(name)
		if err != nil {
			return f.Fail(ExitCommandError, "unknown module", err)
		}
		mc := ModuleColumns{Module: name}
		for _, h := range headers {
			mc.Columns = append(mc.Columns, ColumnInfo{Name: h.Name, Width: h.Width})
		}
		layouts = append(layouts, mc)
	}

	return f.Success(layouts, func(w io.Writer) {
		for i, mc := range layouts {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%s (%d columns)\n", mc.Module, len(mc.Columns))
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			for _, c := range mc.Columns {
				fmt.Fprintf(tw, "  %s\t%d\n", c.Name, c.Width)
			}
			tw.Flush()
		}
	})
}
