package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jtomasevic/synar/kernel"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [edge-id]",
	Short: "Print an edge's type, args, and beliefs as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	blob, err := store.Load()
	if err != nil {
		return err
	}

	k := kernel.NewKernel(nil)
	if err := k.LoadState(blob); err != nil {
		return err
	}

	edge, ok := k.GetEdge(args[0])
	if !ok {
		return fmt.Errorf("no such edge: %s", args[0])
	}
	out, err := json.MarshalIndent(edge, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
