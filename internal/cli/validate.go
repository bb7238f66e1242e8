package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/zkarith/internal/config"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool           `json:"valid"`
	Config *config.Config `json:"config,omitempty"`
	Error  *config.Error  `json:"error,omitempty"`
}

// NewValidateConfigCommand creates the validate-config command.
func NewValidateConfigCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate-config <file>",
		Short: "Validate a config file against the schema",
		Long: `Validate a zkarith YAML config file against the embedded CUE schema
and print the effective configuration with defaults applied.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidateConfig(rootOpts, args[0], cmd)
		},
	}
}

func runValidateConfig(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	cfg, err := config.Load(path)
	if err != nil {
		var cfgErr *config.Error
		if !errors.As(err, &cfgErr) {
			return f.Fail(ExitCommandError, "failed to load config", err)
		}
		if cfgErr.Code == config.ErrCodeRead {
			return f.Fail(ExitCommandError, "failed to read config", err)
		}
		if f.JSON() {
			_ = f.Error(cfgErr.Code, cfgErr.Message, ValidationResult{Valid: false, Error: cfgErr})
		} else {
			fmt.Fprintln(f.Writer, "✗ Invalid config")
			if cfgErr.Path != "" {
				fmt.Fprintf(f.Writer, "  %s: %s: %s\n", cfgErr.Code, cfgErr.Path, cfgErr.Message)
			} else {
				fmt.Fprintf(f.Writer, "  %s: %s\n", cfgErr.Code, cfgErr.Message)
			}
		}
		return WrapExitError(ExitFailure, "config validation failed", err)
	}

	f.VerboseLog("Validated %s", path)
	return f.Success(ValidationResult{Valid: true, Config: cfg}, func(w io.Writer) {
		fmt.Fprintln(w, "✓ Config valid")
		fmt.Fprintf(w, "  output: %s (parallelism %d)\n", cfg.Output.Dir, cfg.Output.Parallelism)
		if len(cfg.Modules) > 0 {
			fmt.Fprintf(w, "  modules: %v\n", cfg.Modules)
		}
		if len(cfg.Limits) > 0 {
			fmt.Fprintf(w, "  limits: %v\n", cfg.Limits)
		}
		if cfg.Store != nil {
			fmt.Fprintf(w, "  store: %s\n", cfg.Store.Path)
		}
		if cfg.Strict {
			fmt.Fprintln(w, "  strict: true")
		}
	})
}
