package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/libscan/core/runlog"
)

func newRunsCmd(load configLoader) *cobra.Command {
	var (
		datasetName string
		limit       int
	)
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List logged solve and tune runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			store, err := runlog.Open(cfg.RunLog)
			if err != nil {
				return err
			}
			if store == nil {
				return errors.New("run log is disabled")
			}
			defer func() { _ = store.Close() }()
			recs, err := store.Query(cmd.Context(), runlog.Query{Dataset: datasetName, Limit: limit})
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tDATASET\tCOMMAND\tMETHOD\tSCORE\tTRIALS\tDURATION")
			for _, r := range recs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
					r.Timestamp.Format(time.RFC3339), r.Dataset, r.Command, r.Method, r.Score, r.Trials,
					time.Duration(r.DurationMS)*time.Millisecond)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&datasetName, "dataset", "", "only runs of this dataset")
	cmd.Flags().IntVar(&limit, "limit", 20, "show at most this many recent runs")
	return cmd
}
