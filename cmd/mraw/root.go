package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arloliu/mraw"
	"github.com/arloliu/mraw/format"
	"github.com/arloliu/mraw/source"
)

// Version is the application version.
const Version = "0.1.0"

// Options holds the frame geometry flags shared by all subcommands.
type Options struct {
	Width      int
	Height     int
	Frames     int
	PixelType  string
	FrameRate  float64
	TimeOrigin float64
	ByteOrder  string
	Verbose    bool

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &Options{}

	root := &cobra.Command{
		Use:           "mraw",
		Short:         "Inspect fixed-layout raw frame sequence files",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !opts.Verbose {
				opts.logger = zap.NewNop()
				return nil
			}

			logger, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			opts.logger = logger

			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	flags := root.PersistentFlags()
	flags.IntVar(&opts.Width, "width", 0, "frame width in pixels")
	flags.IntVar(&opts.Height, "height", 0, "frame height in pixels")
	flags.IntVar(&opts.Frames, "frames", 0, "number of frames in the file")
	flags.StringVar(&opts.PixelType, "type", format.DefaultPixelType.String(), "pixel type (uint8, int16, uint16, float32, ...)")
	flags.Float64Var(&opts.FrameRate, "fps", source.DefaultFrameRate, "frame rate in frames per second")
	flags.Float64Var(&opts.TimeOrigin, "t0", source.DefaultTimeOrigin, "timestamp of the first frame")
	flags.StringVar(&opts.ByteOrder, "byte-order", "native", "pixel byte order: native, little or big")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")
	_ = root.MarkPersistentFlagRequired("width")
	_ = root.MarkPersistentFlagRequired("height")
	_ = root.MarkPersistentFlagRequired("frames")

	root.AddCommand(newFrameCmd(opts), newStatsCmd(opts))

	return root
}

// open builds a frame source for path from the shared flags.
func (o *Options) open(path string) (*source.Source, error) {
	pt, err := format.ParsePixelType(o.PixelType)
	if err != nil {
		return nil, err
	}

	srcOpts := []source.Option{
		source.WithPixelType(pt),
		source.WithFrameRate(o.FrameRate),
		source.WithTimeOrigin(o.TimeOrigin),
		source.WithLogger(o.logger),
	}

	switch strings.ToLower(o.ByteOrder) {
	case "native", "":
	case "little", "le":
		srcOpts = append(srcOpts, source.WithLittleEndian())
	case "big", "be":
		srcOpts = append(srcOpts, source.WithBigEndian())
	default:
		return nil, fmt.Errorf("unknown byte order %q", o.ByteOrder)
	}

	return mraw.Open(path, o.Width, o.Height, o.Frames, srcOpts...)
}
