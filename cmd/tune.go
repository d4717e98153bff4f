package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kilianp07/libscan/app"
	"github.com/kilianp07/libscan/config"
	"github.com/kilianp07/libscan/infra/logger"
	"github.com/kilianp07/libscan/infra/metrics"
)

func newTuneCmd(load configLoader) *cobra.Command {
	var (
		output      string
		method      string
		evaluations int
		metricsAddr string
	)
	cmd := &cobra.Command{
		Use:   "tune <instance>",
		Short: "Search ranking weights for an instance and keep the best schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wrapped := func() (*config.Config, error) {
				cfg, err := load()
				if err != nil {
					return nil, err
				}
				if method != "" {
					cfg.Search.Method = method
				}
				if evaluations > 0 {
					cfg.Search.MaxEvaluations = evaluations
				}
				if metricsAddr != "" {
					cfg.Metrics.PrometheusAddr = metricsAddr
				}
				return cfg, cfg.Validate()
			}
			return withService(wrapped, func(svc *app.Service, cfg *config.Config) error {
				ctx, cancel := context.WithCancel(cmd.Context())
				defer cancel()
				if addr := cfg.Metrics.PrometheusAddr; addr != "" {
					go func() {
						if err := metrics.StartPromServer(ctx, addr); err != nil {
							logger.New("tune").Errorf("prom server: %v", err)
						}
					}()
				}
				out, err := svc.Tune(ctx, app.Request{InstancePath: args[0], OutputPath: output})
				if err != nil {
					return err
				}
				printOutcome(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "solution file (default <output.dir>/<dataset>.txt)")
	cmd.Flags().StringVar(&method, "method", "", "search method: evolution or nelder-mead")
	cmd.Flags().IntVar(&evaluations, "max-evaluations", 0, "maximum number of scheduler runs")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while tuning")
	return cmd
}
