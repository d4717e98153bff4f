package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kilianp07/libscan/app"
	"github.com/kilianp07/libscan/config"
)

func newSolveCmd(load configLoader) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "solve <instance>...",
		Short: "Build a schedule for each instance with the configured weights",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "" && len(args) > 1 {
				return errors.New("--output requires a single instance")
			}
			return withService(load, func(svc *app.Service, _ *config.Config) error {
				for _, path := range args {
					out, err := svc.Solve(cmd.Context(), app.Request{InstancePath: path, OutputPath: output})
					if err != nil {
						return err
					}
					printOutcome(cmd.OutOrStdout(), out)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "solution file (default <output.dir>/<dataset>.txt)")
	return cmd
}

func printOutcome(w io.Writer, out *app.Outcome) {
	fmt.Fprintf(w, "%s\t%d\t%s", out.Dataset, out.Score, out.OutputPath)
	if out.HasPreviousBest {
		fmt.Fprintf(w, "\t(best %d)", out.PreviousBest)
	}
	fmt.Fprintln(w)
}
