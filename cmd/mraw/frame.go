package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/arloliu/mraw/stats"
)

func newFrameCmd(opts *Options) *cobra.Command {
	var (
		index int
		at    float64
	)

	cmd := &cobra.Command{
		Use:   "frame FILE",
		Short: "Print a summary of one frame, selected by index or time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := opts.open(args[0])
			if err != nil {
				return err
			}

			byIndex := cmd.Flags().Changed("index")
			byTime := cmd.Flags().Changed("time")
			if byIndex == byTime {
				return errors.New("exactly one of --index or --time is required")
			}

			if byTime {
				index = src.NearestIndex(at)
			}

			frame, err := src.Frame(index)
			if err != nil {
				return err
			}

			fs := stats.FrameStats(frame)
			rows, cols := frame.Shape()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "frame\t%d\n", frame.Index())
			fmt.Fprintf(w, "timestamp\t%g\n", src.Timestamp(frame.Index()))
			fmt.Fprintf(w, "shape\t%dx%d %s\n", rows, cols, frame.PixelType())
			fmt.Fprintf(w, "max\t%g\n", fs.Max)
			fmt.Fprintf(w, "min\t%g\n", fs.Min)
			fmt.Fprintf(w, "mean\t%g\n", fs.Mean)
			fmt.Fprintf(w, "std\t%g\n", fs.Std)
			fmt.Fprintf(w, "checksum\t%016x\n", frame.Checksum())

			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&index, "index", "i", 0, "zero-based frame index")
	cmd.Flags().Float64VarP(&at, "time", "t", 0, "select the frame nearest to this timestamp")

	return cmd
}
