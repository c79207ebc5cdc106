package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jtomasevic/synar/kernel"
	"github.com/jtomasevic/synar/persist"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Save kernel state to the badger-backed snapshot store, or show when it was last saved",
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Run a fresh kernel for --steps and save its state",
	RunE:  runSnapshotSave,
}

var snapshotShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print when the snapshot store was last written",
	RunE:  runSnapshotShow,
}

func init() {
	snapshotSaveCmd.Flags().IntVar(&runSteps, "steps", 10, "number of steps to run before saving")
	snapshotCmd.AddCommand(snapshotSaveCmd, snapshotShowCmd)
	rootCmd.AddCommand(snapshotCmd)
}

func openStore() (*persist.SnapshotStore, error) {
	return persist.Open(statePath)
}

func runSnapshotSave(cmd *cobra.Command, args []string) error {
	k := kernel.NewKernel(nil)
	k.Run(runSteps)

	blob, err := k.SaveState()
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Save(blob); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved snapshot (%d bytes) to %s\n", len(blob), statePath)
	return nil
}

func runSnapshotShow(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	at, err := store.LastSnapshotAt()
	if err != nil {
		return err
	}
	if at.IsZero() {
		fmt.Fprintln(cmd.OutOrStdout(), "no snapshot saved yet")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "last snapshot: %s\n", at.Format("2006-01-02T15:04:05Z07:00"))
	return nil
}
