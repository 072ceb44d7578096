package source

import (
	"fmt"
	"io"
	"math"
	"os"

	"go.uber.org/zap"

	"github.com/arloliu/mraw/endian"
	"github.com/arloliu/mraw/format"
	"github.com/arloliu/mraw/internal/options"
)

// Source is a validated view of a raw frame sequence file.
//
// A Source holds only metadata; frame data is read from disk on every call.
// It is immutable after construction.
type Source struct {
	path       string
	width      int
	height     int
	frameCount int
	pixelType  format.PixelType
	frameRate  float64
	timeOrigin float64
	engine     endian.EndianEngine
	logger     *zap.Logger

	stride     int64
	fileSize   int64
	timestamps []float64
}

// New validates the raw frame file at path against the declared geometry and
// returns a Source for it.
//
// The file is stat'ed once; its size must equal width*height*bytesPerPixel*frameCount.
//
// Parameters:
//   - path: Location of the raw frame file
//   - width: Frame width in pixels (> 0)
//   - height: Frame height in pixels (> 0)
//   - frameCount: Number of frames in the file (> 0)
//   - opts: Optional configuration (WithPixelType, WithFrameRate, WithTimeOrigin, ...)
//
// Returns:
//   - *Source: The validated frame source
//   - error: ErrInvalidGeometry, ErrInvalidPixelType, ErrInvalidOption, ErrIO or ErrSizeMismatch
func New(path string, width, height, frameCount int, opts ...Option) (*Source, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if width <= 0 || height <= 0 || frameCount <= 0 {
		return nil, fmt.Errorf("%w: width=%d height=%d frames=%d must all be positive",
			ErrInvalidGeometry, width, height, frameCount)
	}

	stride, ok := mulInt64(int64(width), int64(height), int64(cfg.pixelType.Size()))
	if !ok {
		return nil, fmt.Errorf("%w: %dx%d %s frame size overflows", ErrInvalidGeometry, width, height, cfg.pixelType)
	}
	if stride > int64(math.MaxInt) {
		return nil, fmt.Errorf("%w: frame of %d bytes does not fit in memory", ErrInvalidGeometry, stride)
	}

	expected, ok := mulInt64(stride, int64(frameCount))
	if !ok {
		return nil, fmt.Errorf("%w: %d frames of %d bytes overflow", ErrInvalidGeometry, frameCount, stride)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrIO, path)
	}

	if info.Size() != expected {
		return nil, fmt.Errorf("%w: %s is %d bytes, expected %d (%dx%d %s x %d frames)",
			ErrSizeMismatch, path, info.Size(), expected, width, height, cfg.pixelType, frameCount)
	}

	src := &Source{
		path:       path,
		width:      width,
		height:     height,
		frameCount: frameCount,
		pixelType:  cfg.pixelType,
		frameRate:  cfg.frameRate,
		timeOrigin: cfg.timeOrigin,
		engine:     cfg.engine,
		logger:     cfg.logger,
		stride:     stride,
		fileSize:   info.Size(),
		timestamps: makeTimestamps(frameCount, cfg.frameRate, cfg.timeOrigin),
	}

	src.logger.Debug("opened raw frame source",
		zap.String("path", path),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("frames", frameCount),
		zap.Stringer("pixel_type", cfg.pixelType),
		zap.String("byte_order", endian.Name(cfg.engine)),
		zap.Int64("file_size", src.fileSize),
	)

	return src, nil
}

func makeTimestamps(n int, fps, t0 float64) []float64 {
	ts := make([]float64, n)
	for i := range ts {
		ts[i] = t0 + float64(i)/fps
	}

	return ts
}

// Frame reads the frame at the zero-based index.
//
// The byte offset index*stride is checked against the file size before any
// I/O takes place. The file is opened, read and closed within the call.
//
// Returns:
//   - *Frame: The frame data, shaped (height, width)
//   - error: ErrOutOfRange if the offset is outside the file, ErrIO on open or short read
func (s *Source) Frame(index int) (*Frame, error) {
	offset, err := s.offsetOf(index)
	if err != nil {
		return nil, err
	}

	data := make([]byte, s.stride)
	if err := s.readAt(offset, data); err != nil {
		return nil, err
	}

	return &Frame{
		index:     index,
		width:     s.width,
		height:    s.height,
		pixelType: s.pixelType,
		engine:    s.engine,
		data:      data,
	}, nil
}

// FrameByTime reads the frame whose timestamp is nearest to t.
//
// Ties are broken in favor of the lower index. It fails like Frame.
func (s *Source) FrameByTime(t float64) (*Frame, error) {
	return s.Frame(s.NearestIndex(t))
}

// NearestIndex returns the index i minimizing |Timestamp(i) - t|.
//
// When two timestamps are equally close the lower index wins. A NaN t yields 0.
func (s *Source) NearestIndex(t float64) int {
	best := 0
	bestDiff := math.Abs(s.timestamps[0] - t)
	for i := 1; i < len(s.timestamps); i++ {
		if d := math.Abs(s.timestamps[i] - t); d < bestDiff {
			best, bestDiff = i, d
		}
	}

	return best
}

func (s *Source) offsetOf(index int) (int64, error) {
	if index < 0 {
		return 0, fmt.Errorf("%w: index %d is negative", ErrOutOfRange, index)
	}

	// Guards index*stride against overflow before multiplying.
	if int64(index) > s.fileSize/s.stride {
		return 0, fmt.Errorf("%w: %s is too small to hold frame %d", ErrOutOfRange, s.path, index)
	}

	offset := int64(index) * s.stride
	if offset >= s.fileSize {
		return 0, fmt.Errorf("%w: %s is too small to hold frame %d", ErrOutOfRange, s.path, index)
	}

	return offset, nil
}

func (s *Source) readAt(offset int64, buf []byte) error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("%w: seek %s to %d: %w", ErrIO, s.path, offset, err)
	}

	if _, err := io.ReadFull(f, buf); err != nil {
		return fmt.Errorf("%w: read %d bytes at offset %d of %s: %w", ErrIO, len(buf), offset, s.path, err)
	}

	return nil
}

// Path returns the location of the frame file.
func (s *Source) Path() string { return s.path }

// Width returns the frame width in pixels.
func (s *Source) Width() int { return s.width }

// Height returns the frame height in pixels.
func (s *Source) Height() int { return s.height }

// FrameCount returns the number of frames in the file.
func (s *Source) FrameCount() int { return s.frameCount }

// PixelType returns the element type of every pixel.
func (s *Source) PixelType() format.PixelType { return s.pixelType }

// BytesPerPixel returns the size of one pixel in bytes.
func (s *Source) BytesPerPixel() int { return s.pixelType.Size() }

// FrameRate returns the frame rate in frames per second.
func (s *Source) FrameRate() float64 { return s.frameRate }

// TimeOrigin returns the timestamp of frame 0.
func (s *Source) TimeOrigin() float64 { return s.timeOrigin }

// ByteOrder returns the byte order used to decode pixels.
func (s *Source) ByteOrder() endian.EndianEngine { return s.engine }

// Stride returns the number of bytes occupied by one frame.
func (s *Source) Stride() int64 { return s.stride }

// FileSize returns the file size observed at construction.
func (s *Source) FileSize() int64 { return s.fileSize }

// ExpectedFileSize returns Stride() * FrameCount(), which equals FileSize().
func (s *Source) ExpectedFileSize() int64 { return s.stride * int64(s.frameCount) }

// Timestamp returns the timestamp of frame i. It panics if i is out of range.
func (s *Source) Timestamp(i int) float64 { return s.timestamps[i] }

// Timestamps returns a copy of all frame timestamps.
func (s *Source) Timestamps() []float64 {
	out := make([]float64, len(s.timestamps))
	copy(out, s.timestamps)

	return out
}

// mulInt64 multiplies positive factors and reports whether the product fits in an int64.
func mulInt64(factors ...int64) (int64, bool) {
	product := int64(1)
	for _, f := range factors {
		if f != 0 && product > math.MaxInt64/f {
			return 0, false
		}
		product *= f
	}

	return product, true
}
