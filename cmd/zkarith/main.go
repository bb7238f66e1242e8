// Command zkarith turns EVM execution events into arithmetization traces.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/zkarith/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
