// Command synar-bench drives a kernel.Kernel from the command line: seed it
// with facts, step it, inspect its state, and snapshot it to disk. Grounded
// on the pack's cobra CLI-with-subcommands shape (tim-coutinho-agentops'
// cli/cmd/ao/root.go).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statePath string

var rootCmd = &cobra.Command{
	Use:   "synar-bench",
	Short: "Drive a non-axiomatic reasoning kernel from the command line",
	Long: `synar-bench is a small operator CLI around the synar reasoning kernel.

Core Commands:
  run       Step the kernel forward and report what fired
  inspect   Print an edge's beliefs
  snapshot  Save kernel state to a badger-backed store, or show when it was last saved`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&statePath, "state-dir", "./synar-state", "badger snapshot directory")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
