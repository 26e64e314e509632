package cli

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"weatherstack-check/internal/metrics"
	"weatherstack-check/internal/models"
	"weatherstack-check/internal/repositories"
	"weatherstack-check/internal/services/conformance"
)

var errScenariosFailed = errors.New("one or more scenarios failed")

type runOptions struct {
	kind        string
	units       string
	metricsFile string
}

func newRunCommand(root *rootOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the conformance scenarios against the configured API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChecks(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.kind, "kind", "", "only run scenarios for one endpoint: current, historical or forecast")
	cmd.Flags().StringVar(&opts.units, "units", "", "request every scenario in m (metric), s (scientific) or f (fahrenheit)")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this file after the run")

	return cmd
}

func runChecks(cmd *cobra.Command, root *rootOptions, opts *runOptions) error {
	kind := models.Kind(opts.kind)
	if kind != "" && !kind.Valid() {
		return errors.Errorf("unknown kind %q, expected current, historical or forecast", opts.kind)
	}

	var units models.Units
	if opts.units != "" {
		var err error
		if units, err = models.ParseUnits(opts.units); err != nil {
			return err
		}
	}

	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	l, stop, err := root.newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer stop()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	client, err := repositories.NewWeatherstackRepository(cfg.Weatherstack, l, nil, repositories.WithMetrics(m))
	if err != nil {
		return errors.Wrap(err, "failed to create weatherstack client")
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	scenarios := conformance.Filter(conformance.DefaultScenarios(time.Now()), kind)
	if units != "" {
		scenarios = conformance.WithUnits(scenarios, units)
	}
	report := conformance.NewService(client, m, l).Run(ctx, scenarios)

	printReport(cmd.OutOrStdout(), report)

	if opts.metricsFile != "" {
		if err := metrics.WriteTextfile(opts.metricsFile, reg); err != nil {
			return errors.Wrapf(err, "failed to write metrics to %s", opts.metricsFile)
		}
	}

	if !report.OK() {
		return errScenariosFailed
	}
	return nil
}
