package cli

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/zkarith/internal/manifest"
	"github.com/roach88/zkarith/internal/trace"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions
	Rows int
}

// TraceInfo describes a decoded trace file.
type TraceInfo struct {
	Module  string       `json:"module"`
	Rows    int          `json:"rows"`
	Digest  string       `json:"digest"`
	Columns []ColumnInfo `json:"columns"`
	Sample  [][]string   `json:"sample,omitempty"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inspect <trace.bin>",
		Short: "Decode a trace file",
		Long: `Decode a binary trace file and print its module, row count, digest and
column headers. --rows N also prints the first N rows as hex.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(opts, args[0], cmd)
		},
	}
	cmd.Flags().IntVar(&opts.Rows, "rows", 0, "number of rows to print")
	return cmd
}

func runInspect(opts *InspectOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	data, err := os.ReadFile(path)
	if err != nil {
		return f.Fail(ExitCommandError, "failed to read trace", err)
	}
	t, err := trace.Read(bytes.NewReader(data))
	if err != nil {
		return f.Fail(ExitCommandError, "failed to decode trace", err)
	}

	info := TraceInfo{Module: t.Module, Rows: t.Rows, Digest: manifest.Digest(manifest.DomainTrace, data)}
	for _, c := range t.Columns {
		info.Columns = append(info.Columns, ColumnInfo{Name: c.Header.Name, Width: c.Header.Width})
	}
	for r := 0; r < min(opts.Rows, t.Rows); r++ {
		row := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			row[i] = hex.EncodeToString(c.Cell(r))
		}
		info.Sample = append(info.Sample, row)
	}

	return f.Success(info, func(w io.Writer) {
		fmt.Fprintf(w, "Module:  %s\nRows:    %d\nColumns: %d\nDigest:  %s\n", info.Module, info.Rows, len(info.Columns), info.Digest)
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for i, c := range info.Columns {
			fmt.Fprintf(tw, "  %s\t%d", c.Name, c.Width)
			for _, row := range info.Sample {
				fmt.Fprintf(tw, "\t%s", row[i])
			}
			fmt.Fprintln(tw)
		}
		tw.Flush()
	})
}
