package main

import (
	"github.com/TomTonic/qbench"
	"github.com/spf13/cobra"
)

// paramCommands returns one subcommand per circuit family. Each parses its own flags into a
// qbench.Params and hands it to run.
func paramCommands(run func(cmd *cobra.Command, p qbench.Params) error) []*cobra.Command {
	var rp qbench.RandomParams
	random := &cobra.Command{
		Use:   "random",
		Short: "Pseudo-random circuit reproducible from a seed",
		Args:  cobra.NoArgs,
		RunE:  func(cmd *cobra.Command, _ []string) error { return run(cmd, rp) },
	}
	random.Flags().IntVarP(&rp.N, "qubits", "n", 3, "number of qubits")
	random.Flags().IntVarP(&rp.Depth, "depth", "d", 10, "number of operations")
	random.Flags().Int64VarP(&rp.Seed, "seed", "s", 42, "generator seed")

	var ep qbench.ValueEncodingParams
	var stage string
	encode := &cobra.Command{
		Use:   "encode",
		Short: "Phase encoding of a scalar value, optionally followed by an inverse Fourier transform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := qbench.ParseStage(stage)
			if err != nil {
				return err
			}
			ep.Stage = s
			return run(cmd, ep)
		},
	}
	encode.Flags().IntVarP(&ep.N, "qubits", "n", 3, "number of qubits")
	encode.Flags().Float64VarP(&ep.Value, "value", "v", 1, "value to encode")
	encode.Flags().StringVar(&stage, "stage", string(qbench.StageFull), "partial or full")

	var gp qbench.SingleGateParams
	gate := &cobra.Command{
		Use:   "gate",
		Short: "Circuit holding one gate",
		Args:  cobra.NoArgs,
		RunE:  func(cmd *cobra.Command, _ []string) error { return run(cmd, gp) },
	}
	gate.Flags().IntVarP(&gp.N, "qubits", "n", 1, "number of qubits")
	gate.Flags().StringVarP(&gp.Gate, "gate", "g", "H", "one of H, X, Y, Z, P, RX, RY, RZ")
	gate.Flags().Float64Var(&gp.Theta, "theta", 0, "angle of P, RX, RY and RZ")
	gate.Flags().IntVarP(&gp.Target, "target", "t", 0, "target qubit")

	return []*cobra.Command{random, encode, gate}
}
