package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPixelType_Size(t *testing.T) {
	tests := []struct {
		pt   PixelType
		size int
		name string
	}{
		{Uint8, 1, "uint8"},
		{Int8, 1, "int8"},
		{Uint16, 2, "uint16"},
		{Int16, 2, "int16"},
		{Uint32, 4, "uint32"},
		{Int32, 4, "int32"},
		{Float32, 4, "float32"},
		{Uint64, 8, "uint64"},
		{Int64, 8, "int64"},
		{Float64, 8, "float64"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.size, tt.pt.Size())
			require.True(t, tt.pt.IsValid())
			require.Equal(t, tt.name, tt.pt.String())

			parsed, err := ParsePixelType(tt.name)
			require.NoError(t, err)
			require.Equal(t, tt.pt, parsed)
		})
	}
}

func TestPixelType_Invalid(t *testing.T) {
	for _, pt := range []PixelType{0, 0xB, 0xFF} {
		require.False(t, pt.IsValid())
		require.Equal(t, 0, pt.Size())
		require.Equal(t, "Unknown", pt.String())
	}
}

func TestPixelType_IsFloat(t *testing.T) {
	require.True(t, Float32.IsFloat())
	require.True(t, Float64.IsFloat())
	require.False(t, Uint16.IsFloat())
	require.False(t, Int64.IsFloat())
}

func TestParsePixelType(t *testing.T) {
	t.Run("numpy aliases", func(t *testing.T) {
		aliases := map[string]PixelType{
			"u1": Uint8, "i1": Int8, "u2": Uint16, "i2": Int16,
			"u4": Uint32, "i4": Int32, "u8": Uint64, "i8": Int64,
			"f4": Float32, "f8": Float64, " UINT16 ": Uint16,
		}
		for in, want := range aliases {
			got, err := ParsePixelType(in)
			require.NoError(t, err, in)
			require.Equal(t, want, got, in)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := ParsePixelType("complex64")
		require.Error(t, err)
		require.Contains(t, err.Error(), "complex64")
	})
}

func TestPixelTypeOf(t *testing.T) {
	require.Equal(t, Uint8, PixelTypeOf[uint8]())
	require.Equal(t, Int8, PixelTypeOf[int8]())
	require.Equal(t, Uint16, PixelTypeOf[uint16]())
	require.Equal(t, Int16, PixelTypeOf[int16]())
	require.Equal(t, Uint32, PixelTypeOf[uint32]())
	require.Equal(t, Int32, PixelTypeOf[int32]())
	require.Equal(t, Uint64, PixelTypeOf[uint64]())
	require.Equal(t, Int64, PixelTypeOf[int64]())
	require.Equal(t, Float32, PixelTypeOf[float32]())
	require.Equal(t, Float64, PixelTypeOf[float64]())
	require.Equal(t, DefaultPixelType, Uint16)
}
