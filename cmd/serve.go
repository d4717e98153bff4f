package cmd

import (
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/kilianp07/libscan/api/runs"
	"github.com/kilianp07/libscan/core/runlog"
	"github.com/kilianp07/libscan/infra/metrics"
)

func newServeCmd(load configLoader) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the run history and Prometheus metrics over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.API.Addr = addr
			}
			store, err := runlog.Open(cfg.RunLog)
			if err != nil {
				return err
			}
			if store == nil {
				return errors.New("run log is disabled")
			}
			defer func() { _ = store.Close() }()
			return metrics.Serve(cmd.Context(), cfg.API.Addr, map[string]http.Handler{
				runs.Path: runs.NewHandler(store, cfg.API.Token),
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default api.addr)")
	return cmd
}
