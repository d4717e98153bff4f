// Package cmd implements the libscan command line.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/libscan/app"
	"github.com/kilianp07/libscan/config"
	"github.com/kilianp07/libscan/infra/logger"
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var cfgPath string
	root := &cobra.Command{
		Use:           "libscan",
		Short:         "Schedule library signups and book scans within a day budget",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json)")
	loadConfig := func() (*config.Config, error) {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		return cfg, nil
	}
	root.AddCommand(
		newSolveCmd(loadConfig),
		newTuneCmd(loadConfig),
		newEvaluateCmd(loadConfig),
		newRunsCmd(loadConfig),
		newServeCmd(loadConfig),
	)
	return root
}

// Execute runs the CLI.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

type configLoader func() (*config.Config, error)

func withService(load configLoader, fn func(*app.Service, *config.Config) error) error {
	cfg, err := load()
	if err != nil {
		return err
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	return fn(svc, cfg)
}
