package source

import (
	"fmt"
	"iter"
	"math"

	"github.com/arloliu/mraw/endian"
	"github.com/arloliu/mraw/format"
	"github.com/arloliu/mraw/internal/hash"
)

// Frame is one 2D slice of pixel data read from a Source.
//
// The raw bytes are kept exactly as stored in the file. Typed views are
// produced on demand with Pixels, At or Values.
type Frame struct {
	index     int
	width     int
	height    int
	pixelType format.PixelType
	engine    endian.EndianEngine
	data      []byte
}

// Index returns the zero-based index of the frame within its source.
func (f *Frame) Index() int { return f.index }

// Width returns the number of pixels per row.
func (f *Frame) Width() int { return f.width }

// Height returns the number of rows.
func (f *Frame) Height() int { return f.height }

// Shape returns (height, width), the row-major shape of the frame.
func (f *Frame) Shape() (rows, cols int) { return f.height, f.width }

// Len returns the number of pixels in the frame.
func (f *Frame) Len() int { return f.width * f.height }

// PixelType returns the element type of the pixels.
func (f *Frame) PixelType() format.PixelType { return f.pixelType }

// Bytes returns the raw frame bytes. The caller must not modify them.
func (f *Frame) Bytes() []byte { return f.data }

// Checksum returns the xxHash64 of the raw frame bytes.
func (f *Frame) Checksum() uint64 {
	return hash.Checksum(f.data)
}

// At returns the pixel at (row, col) converted to float64.
//
// It panics if row or col is out of range.
func (f *Frame) At(row, col int) float64 {
	if row < 0 || row >= f.height || col < 0 || col >= f.width {
		panic(fmt.Sprintf("source: pixel (%d, %d) out of range for %dx%d frame", row, col, f.height, f.width))
	}

	return f.value(row*f.width + col)
}

// Values returns an iterator over all pixels in row-major order, converted to float64.
//
// 64-bit integers beyond 2^53 lose precision in the conversion.
func (f *Frame) Values() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		n := f.Len()
		for i := 0; i < n; i++ {
			if !yield(f.value(i)) {
				return
			}
		}
	}
}

func (f *Frame) value(i int) float64 {
	switch f.pixelType {
	case format.Uint8:
		return float64(f.data[i])
	case format.Int8:
		return float64(int8(f.data[i]))
	case format.Uint16:
		return float64(f.engine.Uint16(f.data[i*2:]))
	case format.Int16:
		return float64(int16(f.engine.Uint16(f.data[i*2:])))
	case format.Uint32:
		return float64(f.engine.Uint32(f.data[i*4:]))
	case format.Int32:
		return float64(int32(f.engine.Uint32(f.data[i*4:])))
	case format.Uint64:
		return float64(f.engine.Uint64(f.data[i*8:]))
	case format.Int64:
		return float64(int64(f.engine.Uint64(f.data[i*8:])))
	case format.Float32:
		return float64(math.Float32frombits(f.engine.Uint32(f.data[i*4:])))
	case format.Float64:
		return math.Float64frombits(f.engine.Uint64(f.data[i*8:]))
	default:
		panic(fmt.Sprintf("source: unsupported pixel type %s", f.pixelType))
	}
}

// Pixels materializes the frame as a row-major [height][width]T array.
//
// T must be the Go type matching the frame's pixel type, e.g. uint16 for
// format.Uint16. All rows share a single backing slice.
//
// Returns:
//   - [][]T: Pixel rows
//   - error: ErrPixelTypeMismatch if T does not match the frame's pixel type
func Pixels[T format.Pixel](f *Frame) ([][]T, error) {
	if want := format.PixelTypeOf[T](); want != f.pixelType {
		return nil, fmt.Errorf("%w: frame holds %s pixels, requested %s", ErrPixelTypeMismatch, f.pixelType, want)
	}

	flat := make([]T, f.Len())
	decodeInto(f, flat)

	return reshape(flat, f.height, f.width), nil
}

// Flat materializes the frame as a single row-major slice of T.
func Flat[T format.Pixel](f *Frame) ([]T, error) {
	if want := format.PixelTypeOf[T](); want != f.pixelType {
		return nil, fmt.Errorf("%w: frame holds %s pixels, requested %s", ErrPixelTypeMismatch, f.pixelType, want)
	}

	flat := make([]T, f.Len())
	decodeInto(f, flat)

	return flat, nil
}

// decodeInto fills dst, whose element type has already been checked against f.pixelType.
func decodeInto[T format.Pixel](f *Frame, dst []T) {
	e := f.engine
	switch out := any(dst).(type) {
	case []uint8:
		copy(out, f.data)
	case []int8:
		for i := range out {
			out[i] = int8(f.data[i])
		}
	case []uint16:
		for i := range out {
			out[i] = e.Uint16(f.data[i*2:])
		}
	case []int16:
		for i := range out {
			out[i] = int16(e.Uint16(f.data[i*2:]))
		}
	case []uint32:
		for i := range out {
			out[i] = e.Uint32(f.data[i*4:])
		}
	case []int32:
		for i := range out {
			out[i] = int32(e.Uint32(f.data[i*4:]))
		}
	case []uint64:
		for i := range out {
			out[i] = e.Uint64(f.data[i*8:])
		}
	case []int64:
		for i := range out {
			out[i] = int64(e.Uint64(f.data[i*8:]))
		}
	case []float32:
		for i := range out {
			out[i] = math.Float32frombits(e.Uint32(f.data[i*4:]))
		}
	case []float64:
		for i := range out {
			out[i] = math.Float64frombits(e.Uint64(f.data[i*8:]))
		}
	}
}

func reshape[T any](flat []T, rows, cols int) [][]T {
	out := make([][]T, rows)
	for r := range out {
		out[r] = flat[r*cols : (r+1)*cols : (r+1)*cols]
	}

	return out
}
