package source

import (
	"encoding/binary"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mraw/endian"
	"github.com/arloliu/mraw/format"
)

// writeUint16Frames writes frameCount little-endian uint16 frames where every
// pixel of frame k is valueOf(k, pixel).
func writeUint16Frames(t *testing.T, width, height, frameCount int, valueOf func(frame, pixel int) uint16) string {
	t.Helper()

	buf := make([]byte, 0, width*height*frameCount*2)
	for k := 0; k < frameCount; k++ {
		for p := 0; p < width*height; p++ {
			buf = binary.LittleEndian.AppendUint16(buf, valueOf(k, p))
		}
	}

	return writeFile(t, "frames.mraw", buf)
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	return path
}

func constantFrames(frame, _ int) uint16 { return uint16(frame) }

func TestNew(t *testing.T) {
	path := writeUint16Frames(t, 4, 4, 10, constantFrames)

	src, err := New(path, 4, 4, 10)
	require.NoError(t, err)

	require.Equal(t, path, src.Path())
	require.Equal(t, 4, src.Width())
	require.Equal(t, 4, src.Height())
	require.Equal(t, 10, src.FrameCount())
	require.Equal(t, format.Uint16, src.PixelType())
	require.Equal(t, 2, src.BytesPerPixel())
	require.Equal(t, DefaultFrameRate, src.FrameRate())
	require.Equal(t, DefaultTimeOrigin, src.TimeOrigin())
	require.True(t, endian.IsNative(src.ByteOrder()))
	require.Equal(t, int64(32), src.Stride())
	require.Equal(t, int64(320), src.FileSize())
	require.Equal(t, src.FileSize(), src.ExpectedFileSize())
}

func TestNew_AllPixelTypes(t *testing.T) {
	types := []format.PixelType{
		format.Uint8, format.Int8, format.Uint16, format.Int16, format.Uint32,
		format.Int32, format.Uint64, format.Int64, format.Float32, format.Float64,
	}

	for _, pt := range types {
		t.Run(pt.String(), func(t *testing.T) {
			const w, h, n = 3, 2, 4
			path := writeFile(t, "f.raw", make([]byte, w*h*n*pt.Size()))

			src, err := New(path, w, h, n, WithPixelType(pt))
			require.NoError(t, err)
			require.Equal(t, src.FileSize(), src.ExpectedFileSize())
			require.Equal(t, int64(w*h*pt.Size()), src.Stride())
		})
	}
}

func TestNew_SizeMismatch(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"empty", 0},
		{"one byte short", 319},
		{"one frame short", 288},
		{"one byte long", 321},
		{"one frame long", 352},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "f.mraw", make([]byte, tt.size))

			src, err := New(path, 4, 4, 10)
			require.ErrorIs(t, err, ErrSizeMismatch)
			require.Nil(t, src)
		})
	}

	t.Run("wrong pixel type", func(t *testing.T) {
		path := writeUint16Frames(t, 4, 4, 10, constantFrames)

		_, err := New(path, 4, 4, 10, WithPixelType(format.Float64))
		require.ErrorIs(t, err, ErrSizeMismatch)
	})
}

func TestNew_InvalidGeometry(t *testing.T) {
	path := writeUint16Frames(t, 4, 4, 10, constantFrames)

	tests := []struct {
		name          string
		width, height int
		frames        int
	}{
		{"zero width", 0, 4, 10},
		{"negative height", 4, -4, 10},
		{"zero frames", 4, 4, 0},
		{"overflowing frame", math.MaxInt, math.MaxInt, 1},
		{"overflowing file", 1 << 20, 1 << 20, math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(path, tt.width, tt.height, tt.frames)
			require.ErrorIs(t, err, ErrInvalidGeometry)
		})
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	path := writeUint16Frames(t, 4, 4, 10, constantFrames)

	_, err := New(path, 4, 4, 10, WithPixelType(format.PixelType(0)))
	require.ErrorIs(t, err, ErrInvalidPixelType)

	for _, fps := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err = New(path, 4, 4, 10, WithFrameRate(fps))
		require.ErrorIs(t, err, ErrInvalidOption, "fps=%v", fps)
	}

	_, err = New(path, 4, 4, 10, WithTimeOrigin(math.Inf(-1)))
	require.ErrorIs(t, err, ErrInvalidOption)

	_, err = New(path, 4, 4, 10, WithByteOrder(nil))
	require.ErrorIs(t, err, ErrInvalidOption)

	src, err := New(path, 4, 4, 10, WithLogger(nil))
	require.NoError(t, err)
	require.NotNil(t, src)
}

func TestNew_MissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing.mraw"), 4, 4, 10)
	require.ErrorIs(t, err, ErrIO)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = New(t.TempDir(), 4, 4, 10)
	require.ErrorIs(t, err, ErrIO)
}

func TestFrame_ConstantFrames(t *testing.T) {
	path := writeUint16Frames(t, 4, 4, 10, constantFrames)

	src, err := New(path, 4, 4, 10, WithLittleEndian())
	require.NoError(t, err)

	frame, err := src.Frame(3)
	require.NoError(t, err)
	require.Equal(t, 3, frame.Index())

	rows, cols := frame.Shape()
	require.Equal(t, 4, rows)
	require.Equal(t, 4, cols)

	pixels, err := Pixels[uint16](frame)
	require.NoError(t, err)
	require.Len(t, pixels, 4)
	for _, row := range pixels {
		require.Equal(t, []uint16{3, 3, 3, 3}, row)
	}
}

func TestFrame_BytesMatchFile(t *testing.T) {
	const w, h, n = 5, 3, 7

	for _, pt := range []format.PixelType{format.Uint8, format.Int16, format.Uint32, format.Float64} {
		t.Run(pt.String(), func(t *testing.T) {
			data := make([]byte, w*h*n*pt.Size())
			rand.New(rand.NewSource(int64(pt))).Read(data)
			path := writeFile(t, "random.raw", data)

			src, err := New(path, w, h, n, WithPixelType(pt))
			require.NoError(t, err)

			stride := int(src.Stride())
			for i := 0; i < n; i++ {
				frame, err := src.Frame(i)
				require.NoError(t, err)
				require.Equal(t, data[i*stride:(i+1)*stride], frame.Bytes(), "frame %d", i)
				require.Equal(t, w*h, frame.Len())
				require.Equal(t, pt, frame.PixelType())
			}
		})
	}
}

func TestFrame_OutOfRange(t *testing.T) {
	path := writeUint16Frames(t, 4, 4, 10, constantFrames)

	src, err := New(path, 4, 4, 10)
	require.NoError(t, err)

	for _, idx := range []int{-1, 10, 11, 1 << 40, math.MaxInt, math.MinInt} {
		frame, err := src.Frame(idx)
		require.ErrorIs(t, err, ErrOutOfRange, "index %d", idx)
		require.Nil(t, frame)
	}

	_, err = src.Frame(9)
	require.NoError(t, err)
}

func TestFrame_OutOfRangeChecksBeforeIO(t *testing.T) {
	path := writeUint16Frames(t, 4, 4, 10, constantFrames)

	src, err := New(path, 4, 4, 10)
	require.NoError(t, err)
	require.NoError(t, os.Remove(path))

	_, err = src.Frame(10)
	require.ErrorIs(t, err, ErrOutOfRange)
	require.NotErrorIs(t, err, ErrIO)
}

func TestFrame_IOErrors(t *testing.T) {
	t.Run("file removed", func(t *testing.T) {
		path := writeUint16Frames(t, 4, 4, 10, constantFrames)
		src, err := New(path, 4, 4, 10)
		require.NoError(t, err)

		require.NoError(t, os.Remove(path))

		_, err = src.Frame(0)
		require.ErrorIs(t, err, ErrIO)
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("file truncated", func(t *testing.T) {
		path := writeUint16Frames(t, 4, 4, 10, constantFrames)
		src, err := New(path, 4, 4, 10)
		require.NoError(t, err)

		require.NoError(t, os.Truncate(path, 300))

		_, err = src.Frame(8)
		require.NoError(t, err)

		_, err = src.Frame(9)
		require.ErrorIs(t, err, ErrIO)
	})
}

func TestTimestamps(t *testing.T) {
	path := writeUint16Frames(t, 2, 2, 5, constantFrames)

	src, err := New(path, 2, 2, 5, WithFrameRate(2.0), WithTimeOrigin(10.0))
	require.NoError(t, err)

	require.Equal(t, []float64{10.0, 10.5, 11.0, 11.5, 12.0}, src.Timestamps())
	require.Equal(t, 11.5, src.Timestamp(3))

	ts := src.Timestamps()
	ts[0] = -1
	require.Equal(t, 10.0, src.Timestamp(0), "Timestamps must return a copy")
}

func TestNearestIndex(t *testing.T) {
	path := writeUint16Frames(t, 2, 2, 5, constantFrames)

	src, err := New(path, 2, 2, 5, WithFrameRate(2.0), WithTimeOrigin(10.0))
	require.NoError(t, err)

	tests := []struct {
		name string
		time float64
		want int
	}{
		{"closer to second frame", 10.6, 1},
		{"exact match", 11.0, 2},
		{"tie picks lower index", 10.25, 0},
		{"tie between last frames", 11.75, 3},
		{"before first frame", -100, 0},
		{"after last frame", 1e9, 4},
		{"nan", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, src.NearestIndex(tt.time))
		})
	}
}

func TestFrameByTime(t *testing.T) {
	path := writeUint16Frames(t, 2, 2, 5, constantFrames)

	src, err := New(path, 2, 2, 5, WithFrameRate(2.0), WithTimeOrigin(10.0), WithLittleEndian())
	require.NoError(t, err)

	byTime, err := src.FrameByTime(10.6)
	require.NoError(t, err)

	byIndex, err := src.Frame(1)
	require.NoError(t, err)

	require.Equal(t, byIndex, byTime)
	require.Equal(t, 1.0, byTime.At(0, 0))
}

func TestFrameByTime_PropagatesErrors(t *testing.T) {
	path := writeUint16Frames(t, 2, 2, 5, constantFrames)

	src, err := New(path, 2, 2, 5)
	require.NoError(t, err)
	require.NoError(t, os.Remove(path))

	_, err = src.FrameByTime(0)
	require.ErrorIs(t, err, ErrIO)
}

func BenchmarkFrame(b *testing.B) {
	const w, h, n = 256, 256, 16
	path := filepath.Join(b.TempDir(), "bench.mraw")
	require.NoError(b, os.WriteFile(path, make([]byte, w*h*n*2), 0o644))

	src, err := New(path, w, h, n)
	require.NoError(b, err)

	b.SetBytes(src.Stride())
	b.ResetTimer()
	i := 0
	for b.Loop() {
		if _, err := src.Frame(i % n); err != nil {
			b.Fatal(err)
		}
		i++
	}
}
