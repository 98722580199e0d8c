package main

import (
	"fmt"
	"io"

	"github.com/TomTonic/qbench"
	"github.com/spf13/cobra"
)

type circuitOutput struct {
	Params       string            `json:"params" yaml:"params"`
	Fingerprint  string            `json:"fingerprint" yaml:"fingerprint"`
	ActiveQubits uint32            `json:"active_qubits" yaml:"active_qubits"`
	Circuit      qbench.CircuitDoc `json:"circuit" yaml:"circuit"`
}

func newCircuitCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "circuit",
		Short: "Print a circuit description without contacting a simulator",
	}
	cmd.AddCommand(paramCommands(func(cmd *cobra.Command, p qbench.Params) error {
		c, err := p.Build()
		if err != nil {
			return err
		}
		fp, err := c.Fingerprint()
		if err != nil {
			return err
		}
		out := circuitOutput{
			Params:       p.String(),
			Fingerprint:  fp,
			ActiveQubits: c.ActiveQubits(),
			Circuit:      c.Doc(),
		}
		return writeOutput(cmd.OutOrStdout(), a.format, out, func(w io.Writer) error {
			fmt.Fprintf(w, "%s\nqubits=%d ops=%d active=%d\nfingerprint=%s\n", out.Params, c.NumQubits, c.Len(), out.ActiveQubits, fp)
			for i, op := range c.Ops {
				fmt.Fprintf(w, "%4d  %v\n", i, op)
			}
			return nil
		})
	})...)
	return cmd
}
