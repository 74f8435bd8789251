package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	rootCmd    = &cobra.Command{
		Use:   "textproc",
		Short: "Text processing tool - concurrent text transform, regex and translation engine",
		Long: `textproc runs text-processing batches through a concurrent task queue.
Each input pane becomes one task; tasks are formatted, analyzed, rewritten
with regex rules, or translated through an LLM provider, and results are
routed back to the matching output pane.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
