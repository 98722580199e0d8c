package main

import (
	"fmt"

	"github.com/TomTonic/qbench"
	"github.com/TomTonic/qbench/internal/config"
	"github.com/TomTonic/qbench/internal/logger"
	"github.com/TomTonic/qbench/internal/simclient"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app carries what the subcommands share. It is filled in by the root command's PersistentPreRunE.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	registry *prometheus.Registry
	orch     *qbench.Orchestrator

	optLevel int
	format   string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "qbench",
		Short:         "Benchmark quantum-circuit compilation and simulation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	root.PersistentFlags().IntVar(&a.optLevel, "opt-level", -1, "optimization level 0..3 (default QBENCH_OPT_LEVEL)")
	root.PersistentFlags().StringVarP(&a.format, "format", "o", "text", "output format: text, json or yaml")

	root.AddCommand(
		newCircuitCmd(a),
		newRunCmd(a),
		newBenchCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty, Out: cmd.ErrOrStderr()})

	switch a.format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("%w: unknown output format %q", qbench.ErrInvalidArgument, a.format)
	}
	if !cmd.Flags().Changed("opt-level") {
		a.optLevel = cfg.OptLevel
	}
	if a.optLevel < 0 || a.optLevel > 3 {
		return fmt.Errorf("%w: optimization level %d outside 0..3", qbench.ErrInvalidArgument, a.optLevel)
	}

	codec, err := simclient.CodecByName(cfg.Codec)
	if err != nil {
		return err
	}
	clientOpts := []simclient.Option{
		simclient.WithCodec(codec),
		simclient.WithTimeout(cfg.Timeout),
		simclient.WithRateLimit(float64(cfg.RateLimit), cfg.RateLimit),
		simclient.WithLogger(a.log),
	}
	a.registry = prometheus.NewRegistry()
	a.orch = qbench.NewOrchestrator(
		simclient.New(cfg.SimulatorURL, simclient.TargetAer, clientOpts...),
		simclient.New(cfg.FallbackURL, simclient.TargetGeneric, clientOpts...),
		qbench.WithLogger(a.log),
		qbench.WithMetrics(qbench.NewMetrics(a.registry)),
	)
	return nil
}
