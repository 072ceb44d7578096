package format

import (
	"fmt"
	"strings"
)

// PixelType identifies the fixed-width element type of every pixel in a raw frame file.
type PixelType uint8

const (
	Uint8   PixelType = 0x1 // Uint8 represents unsigned 8-bit pixels.
	Int8    PixelType = 0x2 // Int8 represents signed 8-bit pixels.
	Uint16  PixelType = 0x3 // Uint16 represents unsigned 16-bit pixels, the default for MRAW files.
	Int16   PixelType = 0x4 // Int16 represents signed 16-bit pixels.
	Uint32  PixelType = 0x5 // Uint32 represents unsigned 32-bit pixels.
	Int32   PixelType = 0x6 // Int32 represents signed 32-bit pixels.
	Uint64  PixelType = 0x7 // Uint64 represents unsigned 64-bit pixels.
	Int64   PixelType = 0x8 // Int64 represents signed 64-bit pixels.
	Float32 PixelType = 0x9 // Float32 represents IEEE 754 single precision pixels.
	Float64 PixelType = 0xA // Float64 represents IEEE 754 double precision pixels.
)

// DefaultPixelType is the pixel type assumed when none is given.
const DefaultPixelType = Uint16

// Pixel is the set of Go element types a frame can be materialized as.
type Pixel interface {
	uint8 | int8 | uint16 | int16 | uint32 | int32 | uint64 | int64 | float32 | float64
}

// Size returns the number of bytes occupied by one pixel, or 0 for an unknown type.
func (p PixelType) Size() int {
	switch p {
	case Uint8, Int8:
		return 1
	case Uint16, Int16:
		return 2
	case Uint32, Int32, Float32:
		return 4
	case Uint64, Int64, Float64:
		return 8
	default:
		return 0
	}
}

// IsValid reports whether p is one of the known pixel types.
func (p PixelType) IsValid() bool {
	return p.Size() > 0
}

// IsFloat reports whether p is a floating point type.
func (p PixelType) IsFloat() bool {
	return p == Float32 || p == Float64
}

func (p PixelType) String() string {
	switch p {
	case Uint8:
		return "uint8"
	case Int8:
		return "int8"
	case Uint16:
		return "uint16"
	case Int16:
		return "int16"
	case Uint32:
		return "uint32"
	case Int32:
		return "int32"
	case Uint64:
		return "uint64"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "Unknown"
	}
}

// ParsePixelType parses a pixel type name such as "uint16" or "float32".
//
// The numpy style aliases "u2", "i4", "f8" and so on are accepted as well.
func ParsePixelType(s string) (PixelType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "uint8", "u1", "byte":
		return Uint8, nil
	case "int8", "i1":
		return Int8, nil
	case "uint16", "u2":
		return Uint16, nil
	case "int16", "i2":
		return Int16, nil
	case "uint32", "u4":
		return Uint32, nil
	case "int32", "i4":
		return Int32, nil
	case "uint64", "u8":
		return Uint64, nil
	case "int64", "i8":
		return Int64, nil
	case "float32", "f4":
		return Float32, nil
	case "float64", "f8", "double":
		return Float64, nil
	default:
		return 0, fmt.Errorf("unknown pixel type: %q", s)
	}
}

// PixelTypeOf returns the PixelType matching the Go element type T.
func PixelTypeOf[T Pixel]() PixelType {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return Uint8
	case int8:
		return Int8
	case uint16:
		return Uint16
	case int16:
		return Int16
	case uint32:
		return Uint32
	case int32:
		return Int32
	case uint64:
		return Uint64
	case int64:
		return Int64
	case float32:
		return Float32
	default:
		return Float64
	}
}
