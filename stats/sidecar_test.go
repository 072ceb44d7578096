package stats

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mraw/internal/pool"
)

func TestCacheDir(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"absolute", "/data/run1/shot.mraw", "/data/run1/.image_stats_shot.mraw"},
		{"relative", "run1/shot.mraw", filepath.Join("run1", ".image_stats_shot.mraw")},
		{"bare name", "shot.mraw", ".image_stats_shot.mraw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, filepath.FromSlash(tt.want), CacheDir(filepath.FromSlash(tt.path)))
		})
	}
}

func TestEncodeSidecar(t *testing.T) {
	bb := pool.NewByteBuffer(64)

	encodeSidecar(bb, []float64{3, 0.5, -1234.5, math.NaN(), math.Inf(1), math.Inf(-1)})

	want := "3.000000000000000000e+00\n" +
		"5.000000000000000000e-01\n" +
		"-1.234500000000000000e+03\n" +
		"nan\n" +
		"inf\n" +
		"-inf\n"
	require.Equal(t, want, string(bb.Bytes()))
}

func TestEncodeSidecar_Empty(t *testing.T) {
	bb := pool.NewByteBuffer(8)
	encodeSidecar(bb, nil)
	require.Equal(t, 0, bb.Len())
}

func TestDecodeSidecar(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		in := []float64{0, 1, 65535, 0.1, 1e-300, -7.25, math.Inf(1), math.Inf(-1)}
		bb := pool.NewByteBuffer(64)
		encodeSidecar(bb, in)

		out, err := decodeSidecar(bb.Bytes())
		require.NoError(t, err)
		require.Equal(t, in, out)
	})

	t.Run("nan", func(t *testing.T) {
		out, err := decodeSidecar([]byte("nan\nNaN\n"))
		require.NoError(t, err)
		require.Len(t, out, 2)
		require.True(t, math.IsNaN(out[0]))
		require.True(t, math.IsNaN(out[1]))
	})

	t.Run("comments blank lines and plain numbers", func(t *testing.T) {
		data := "# header written by hand\n\n3\n  4.5  \n5e0 # trailing comment\r\n\n"
		out, err := decodeSidecar([]byte(data))
		require.NoError(t, err)
		require.Equal(t, []float64{3, 4.5, 5}, out)
	})

	t.Run("empty file", func(t *testing.T) {
		out, err := decodeSidecar(nil)
		require.NoError(t, err)
		require.Empty(t, out)
	})

	t.Run("out of range saturates", func(t *testing.T) {
		out, err := decodeSidecar([]byte("1e400\n-1e400\n"))
		require.NoError(t, err)
		require.Equal(t, []float64{math.Inf(1), math.Inf(-1)}, out)
	})

	t.Run("malformed", func(t *testing.T) {
		for _, data := range []string{"abc\n", "1\n2\nthree\n", "1 2\n", "1,2\n"} {
			_, err := decodeSidecar([]byte(data))
			require.ErrorIs(t, err, ErrMalformedCache, "data %q", data)
		}
	})
}
