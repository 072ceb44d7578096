package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/arloliu/mraw"
	"github.com/arloliu/mraw/stats"
)

func newStatsCmd(opts *Options) *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "stats FILE",
		Short: "Print per-frame max, min, mean and std, using the sidecar cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := opts.open(args[0])
			if err != nil {
				return err
			}

			summary, err := mraw.Stats(src, !noCache, stats.WithLogger(opts.logger))
			if err != nil {
				return err
			}

			if !summary.Consistent() {
				return fmt.Errorf("cached statistics in %s have mismatched lengths; rerun with --no-cache",
					stats.CacheDir(src.Path()))
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "FRAME\tMAX\tMIN\tMEAN\tSTD")
			for i := 0; i < summary.Len(); i++ {
				fs := summary.At(i)
				fmt.Fprintf(w, "%d\t%g\t%g\t%g\t%g\n", i, fs.Max, fs.Min, fs.Mean, fs.Std)
			}

			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "recompute and overwrite the cached statistics")

	return cmd
}
