package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/TomTonic/qbench"
	"github.com/TomTonic/qbench/internal/hostinfo"
	"github.com/TomTonic/qbench/internal/metricsserver"
	"github.com/spf13/cobra"
)

type benchOutput struct {
	Host   hostinfo.Info       `json:"host" yaml:"host"`
	Report *qbench.BenchReport `json:"report" yaml:"report"`
}

func newBenchCmd(a *app) *cobra.Command {
	opts := qbench.DefaultBenchOptions()
	var metricsAddr string
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time cold against cached runs of a circuit",
	}
	cmd.PersistentFlags().IntVar(&opts.Rounds, "rounds", opts.Rounds, "timed runs per path")
	cmd.PersistentFlags().IntVar(&opts.Warmup, "warmup", opts.Warmup, "untimed cached runs before measuring")
	cmd.PersistentFlags().Float64SliceVar(&opts.Thresholds, "thresholds", opts.Thresholds, "relative speedups to test")
	cmd.PersistentFlags().Uint64Var(&opts.Precision, "precision", opts.Precision, "bootstrap repetitions")
	cmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve /metrics on this address (default QBENCH_METRICS_ADDR)")

	cmd.AddCommand(paramCommands(func(cmd *cobra.Command, p qbench.Params) error {
		ctx := cmd.Context()
		if metricsAddr == "" {
			metricsAddr = a.cfg.MetricsAddr
		}
		if metricsAddr != "" {
			srv := metricsserver.New(metricsAddr, a.registry, a.log)
			if err := srv.Start(); err != nil {
				return fmt.Errorf("metrics server: %w", err)
			}
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()
		}

		a.log.Info().Str("params", p.String()).Int("opt_level", a.optLevel).Int("rounds", opts.Rounds).Msg("benchmark started")
		report, err := qbench.Benchmark(ctx, a.orch, p, a.optLevel, opts)
		if err != nil {
			return err
		}
		a.log.Info().Str("params", p.String()).Str("path", report.Path).Msg("benchmark finished")

		out := benchOutput{Host: hostinfo.Collect(ctx), Report: report}
		return writeOutput(cmd.OutOrStdout(), a.format, out, func(w io.Writer) error {
			return writeBenchTable(w, out)
		})
	})...)
	return cmd
}

func writeBenchTable(w io.Writer, out benchOutput) error {
	r := out.Report
	fmt.Fprintf(w, "%s  opt=%d  path=%s  qubits=%d  ops=%d\n", r.Params, r.OptLevel, r.Path, r.Qubits, r.Ops)
	fmt.Fprintf(w, "host: %s/%s %s, %d cpus, %s\n", out.Host.OS, out.Host.Arch, out.Host.CPUModel, out.Host.LogicalCPU, out.Host.GoVersion)
	fmt.Fprintf(w, "compile: %v  timer precision: %dns\n\n", time.Duration(r.CompileNs), r.PrecisionNs)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "path\tmedian\tmean\tstddev\tp90\tmin\tmax\t")
	for _, row := range []struct {
		name string
		s    qbench.Summary
	}{{"cold", r.Cold}, {"cached", r.Cached}} {
		fmt.Fprintf(tw, "%s\t%v\t%v\t%v\t%v\t%v\t%v\t\n", row.name,
			ns(row.s.Median), ns(row.s.Mean), ns(row.s.StdDev), ns(row.s.P90), ns(row.s.Min), ns(row.s.Max))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	for _, s := range r.Speedup {
		fmt.Fprintf(w, "cached faster by >= %3.0f%%: confidence %.4f\n", s.RelativeSpeedupSampleAvsSampleB*100, s.Confidence)
	}
	return nil
}

func ns(v float64) time.Duration { return time.Duration(v).Round(time.Microsecond) }
