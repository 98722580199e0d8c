package main

import (
	"fmt"
	"io"
	"math/cmplx"

	"github.com/TomTonic/qbench"
	"github.com/spf13/cobra"
)

type amplitude struct {
	Index int     `json:"index" yaml:"index"`
	Re    float64 `json:"re" yaml:"re"`
	Im    float64 `json:"im" yaml:"im"`
}

func newRunCmd(a *app) *cobra.Command {
	var indices []int
	var skipCompile bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compile a circuit, execute it and print its state vector",
	}
	cmd.PersistentFlags().IntSliceVar(&indices, "indices", nil, "print only these basis-state amplitudes")
	cmd.PersistentFlags().BoolVar(&skipCompile, "no-compile", false, "skip the cached compilation and simulate from scratch")

	cmd.AddCommand(paramCommands(func(cmd *cobra.Command, p qbench.Params) error {
		ctx := cmd.Context()
		if !skipCompile {
			if err := a.orch.Compile(ctx, p, a.optLevel); err != nil {
				return err
			}
		}

		var amps []complex128
		var err error
		if len(indices) > 0 {
			amps, err = a.orch.Sample(ctx, p, a.optLevel, indices)
		} else {
			amps, err = a.orch.Run(ctx, p, a.optLevel)
		}
		if err != nil {
			return err
		}

		out := make([]amplitude, len(amps))
		for i, amp := range amps {
			idx := i
			if len(indices) > 0 {
				idx = indices[i]
			}
			out[i] = amplitude{Index: idx, Re: real(amp), Im: imag(amp)}
		}
		return writeOutput(cmd.OutOrStdout(), a.format, out, func(w io.Writer) error {
			for i, amp := range amps {
				fmt.Fprintf(w, "%6d  %+.12f %+.12fi  p=%.12f\n", out[i].Index, real(amp), imag(amp), cmplx.Abs(amp)*cmplx.Abs(amp))
			}
			return nil
		})
	})...)
	return cmd
}
