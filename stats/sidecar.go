package stats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arloliu/mraw/internal/pool"
)

// CacheDirPrefix is prepended to the source file's base name to form the cache directory name.
const CacheDirPrefix = ".image_stats_"

// Sidecar file names, one per statistic.
const (
	MaxFile  = "imax.txt"
	MinFile  = "imin.txt"
	MeanFile = "imean.txt"
	StdFile  = "istd.txt"
)

// sidecarPrecision matches numpy.savetxt's default "%.18e" format.
const sidecarPrecision = 18

// CacheDir returns the cache directory for the source file at sourcePath:
// a hidden sibling directory named CacheDirPrefix + base name.
//
//	CacheDir("/data/run1/shot.mraw") == "/data/run1/.image_stats_shot.mraw"
func CacheDir(sourcePath string) string {
	return filepath.Join(filepath.Dir(sourcePath), CacheDirPrefix+filepath.Base(sourcePath))
}

// encodeSidecar renders values one per line into bb.
func encodeSidecar(bb *pool.ByteBuffer, values []float64) {
	for _, v := range values {
		switch {
		case math.IsNaN(v):
			_, _ = bb.WriteString("nan")
		case math.IsInf(v, 1):
			_, _ = bb.WriteString("inf")
		case math.IsInf(v, -1):
			_, _ = bb.WriteString("-inf")
		default:
			bb.AppendFloat(v, 'e', sidecarPrecision)
		}
		_ = bb.WriteByte('\n')
	}
}

// decodeSidecar parses a sidecar file body.
//
// Blank lines and text after '#' are ignored. Every other line must hold
// exactly one decimal number.
func decodeSidecar(data []byte) ([]float64, error) {
	values := make([]float64, 0, bytes.Count(data, []byte{'\n'})+1)

	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++

		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}

		fields := strings.Fields(text)
		switch len(fields) {
		case 0:
			continue
		case 1:
		default:
			return nil, fmt.Errorf("%w: line %d: expected one value, got %d", ErrMalformedCache, line, len(fields))
		}

		v, err := strconv.ParseFloat(fields[0], 64)
		// Out of range values parse to ±Inf or zero, as numpy reads them.
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedCache, line, err)
		}
		values = append(values, v)
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCache, err)
	}

	return values, nil
}
