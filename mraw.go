// Package mraw reads fixed-layout raw frame sequence files and summarizes them.
//
// A raw frame file (as written by high-speed cameras in the MRAW style) is a
// flat sequence of equally sized frames of a single fixed-width pixel type,
// without any header. Frames are addressed by index or by timestamp, and a
// per-frame summary (max, min, mean, standard deviation) can be computed once
// and cached next to the file.
//
// # Core Features
//
//   - Geometry validated against the file size at open time
//   - Frame retrieval by index or nearest timestamp, one open/read/close per call
//   - Typed 2D access for all fixed-width integer and float pixel types
//   - Native, little- or big-endian pixel decoding
//   - Per-frame statistics cached in numpy-compatible sidecar text files
//
// # Basic Usage
//
// Opening a file and reading frames:
//
//	import "github.com/arloliu/mraw"
//
//	src, err := mraw.Open("shot.mraw", 640, 480, 2000,
//	    source.WithFrameRate(5000),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	frame, _ := src.Frame(42)
//	pixels, _ := source.Pixels[uint16](frame)
//
//	frame, _ = src.FrameByTime(0.25)
//
// Computing or loading the statistics cache:
//
//	summary, err := mraw.Stats(src, true)
//	for i := range summary.Len() {
//	    fmt.Println(i, summary.Max[i], summary.Mean[i])
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the source and
// stats packages. For fine-grained control use those packages directly.
package mraw

import (
	"github.com/arloliu/mraw/source"
	"github.com/arloliu/mraw/stats"
)

// Open validates the raw frame file at path and returns a frame source.
//
// This is a thin wrapper around source.New.
//
// Parameters:
//   - path: Location of the raw frame file
//   - width, height: Frame dimensions in pixels
//   - frameCount: Number of frames in the file
//   - opts: Optional configuration (see source.Option)
//
// Available options:
//   - source.WithPixelType(format.Uint8 ... format.Float64), default format.Uint16
//   - source.WithFrameRate(fps), default 1000
//   - source.WithTimeOrigin(t0), default 0
//   - source.WithLittleEndian() / source.WithBigEndian(), default host order
//   - source.WithLogger(*zap.Logger)
//
// Returns:
//   - *source.Source: The validated frame source
//   - error: source.ErrSizeMismatch when the file size does not match the geometry,
//     or another validation error
func Open(path string, width, height, frameCount int, opts ...source.Option) (*source.Source, error) {
	return source.New(path, width, height, frameCount, opts...)
}

// Stats returns the per-frame statistics of src, using the sidecar cache
// next to the source file when useCache is true.
//
// Parameters:
//   - src: A frame source, typically returned by Open
//   - useCache: Load cached statistics when present instead of recomputing
//   - opts: Optional cache configuration (see stats.Option)
//
// Returns:
//   - stats.Summary: The max, min, mean and std sequences in frame order
//   - error: Any error from reading frames or writing the cache
func Stats(src stats.FrameReader, useCache bool, opts ...stats.Option) (stats.Summary, error) {
	cache, err := stats.New(src, opts...)
	if err != nil {
		return stats.Summary{}, err
	}

	return cache.Get(useCache)
}
