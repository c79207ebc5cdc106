package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jtomasevic/synar/kernel"
)

var runSteps int
var runSeedSubject string
var runSeedPredicate string
var runSeedFreq float64
var runSeedConf float64

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Seed one Inheritance fact and step the kernel forward",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().IntVar(&runSteps, "steps", 10, "number of steps to run")
	runCmd.Flags().StringVar(&runSeedSubject, "subject", "", "seed Inheritance subject term")
	runCmd.Flags().StringVar(&runSeedPredicate, "predicate", "", "seed Inheritance predicate term")
	runCmd.Flags().Float64Var(&runSeedFreq, "freq", 1.0, "seed truth frequency")
	runCmd.Flags().Float64Var(&runSeedConf, "conf", 0.9, "seed truth confidence")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	k := kernel.NewKernel(nil)
	k.Bus.On("log", kernel.NewLogListener(cmd.OutOrStdout()))

	if runSeedSubject != "" && runSeedPredicate != "" {
		truth := kernel.TruthValue{Frequency: runSeedFreq, Confidence: runSeedConf}
		id, err := k.InheritanceEdge(
			kernel.Atom(runSeedSubject),
			kernel.Atom(runSeedPredicate),
			&kernel.AddOptions{Truth: &truth},
		)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %s\n", id)
	}

	ran := k.Run(runSteps)
	fmt.Fprintf(cmd.OutOrStdout(), "ran %d/%d steps, %d edges in graph\n", ran, runSteps, k.EdgeCount())
	return nil
}
