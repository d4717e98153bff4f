package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/libscan/app"
	"github.com/kilianp07/libscan/config"
)

func newEvaluateCmd(load configLoader) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "evaluate <instance> <solution>",
		Short: "Score an existing solution file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(load, func(svc *app.Service, _ *config.Config) error {
				ev, err := svc.Evaluate(args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", ev.Dataset, ev.Score)
				if strict && ev.Invalid != nil {
					return ev.Invalid
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when the solution breaks a structural rule")
	return cmd
}
