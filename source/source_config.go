package source

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/arloliu/mraw/endian"
	"github.com/arloliu/mraw/format"
	"github.com/arloliu/mraw/internal/options"
)

const (
	// DefaultFrameRate is the frame rate assumed when none is given, in frames per second.
	DefaultFrameRate = 1000.0
	// DefaultTimeOrigin is the timestamp of frame 0 when none is given.
	DefaultTimeOrigin = 0.0
)

// Option configures a Source at construction time.
type Option = options.Option[*config]

type config struct {
	pixelType  format.PixelType
	frameRate  float64
	timeOrigin float64
	engine     endian.EndianEngine
	logger     *zap.Logger
}

func newConfig() *config {
	return &config{
		pixelType:  format.DefaultPixelType,
		frameRate:  DefaultFrameRate,
		timeOrigin: DefaultTimeOrigin,
		engine:     endian.GetNativeEngine(),
		logger:     zap.NewNop(),
	}
}

// WithPixelType sets the element type of every pixel. The default is format.Uint16.
//
// Returns an ErrInvalidPixelType error for types without a fixed size.
func WithPixelType(pt format.PixelType) Option {
	return options.New(func(c *config) error {
		if !pt.IsValid() {
			return fmt.Errorf("%w: %d", ErrInvalidPixelType, uint8(pt))
		}
		c.pixelType = pt

		return nil
	})
}

// WithFrameRate sets the recording frame rate in frames per second. The default is 1000.
//
// The rate must be finite and positive.
func WithFrameRate(fps float64) Option {
	return options.New(func(c *config) error {
		if math.IsNaN(fps) || math.IsInf(fps, 0) || fps <= 0 {
			return fmt.Errorf("%w: frame rate must be finite and positive, got %v", ErrInvalidOption, fps)
		}
		c.frameRate = fps

		return nil
	})
}

// WithTimeOrigin sets the timestamp assigned to frame 0. The default is 0.
func WithTimeOrigin(t0 float64) Option {
	return options.New(func(c *config) error {
		if math.IsNaN(t0) || math.IsInf(t0, 0) {
			return fmt.Errorf("%w: time origin must be finite, got %v", ErrInvalidOption, t0)
		}
		c.timeOrigin = t0

		return nil
	})
}

// WithByteOrder sets the byte order used to decode multi-byte pixels.
// The default is the byte order of the running host.
func WithByteOrder(engine endian.EndianEngine) Option {
	return options.New(func(c *config) error {
		if engine == nil {
			return fmt.Errorf("%w: nil byte order", ErrInvalidOption)
		}
		c.engine = engine

		return nil
	})
}

// WithLittleEndian decodes pixels as little-endian.
func WithLittleEndian() Option {
	return WithByteOrder(endian.GetLittleEndianEngine())
}

// WithBigEndian decodes pixels as big-endian.
func WithBigEndian() Option {
	return WithByteOrder(endian.GetBigEndianEngine())
}

// WithLogger sets the logger used for debug output. Sources are silent by default.
func WithLogger(logger *zap.Logger) Option {
	return options.NoError(func(c *config) {
		if logger == nil {
			logger = zap.NewNop()
		}
		c.logger = logger
	})
}
