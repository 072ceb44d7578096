package stats

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/arloliu/mraw/internal/fsx"
	"github.com/arloliu/mraw/internal/options"
	"github.com/arloliu/mraw/internal/pool"
	"github.com/arloliu/mraw/source"
)

const (
	cacheDirPerm  os.FileMode = 0o755
	sidecarPerm   os.FileMode = 0o644
	sidecarsCount             = 4
)

// FrameReader is the part of a frame source the cache needs.
//
// *source.Source satisfies it.
type FrameReader interface {
	Path() string
	FrameCount() int
	Frame(index int) (*source.Frame, error)
}

var _ FrameReader = (*source.Source)(nil)

// Cache produces the per-frame statistics of a FrameReader and keeps them in
// sidecar files so that later runs can skip the computation.
type Cache struct {
	reader      FrameReader
	dir         string
	lengthCheck bool
	logger      *zap.Logger
}

// New creates a Cache for reader. No file is touched until Get, Load or Save is called.
//
// Parameters:
//   - reader: The frame source to summarize
//   - opts: Optional configuration (WithLogger, WithCacheDir, WithLengthCheck)
//
// Returns:
//   - *Cache: The statistics cache
//   - error: An error if reader is nil or an option is invalid
func New(reader FrameReader, opts ...Option) (*Cache, error) {
	if reader == nil {
		return nil, errors.New("stats: nil frame reader")
	}

	c := &Cache{
		reader: reader,
		dir:    CacheDir(reader.Path()),
		logger: zap.NewNop(),
	}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// Dir returns the directory holding the sidecar files.
func (c *Cache) Dir() string {
	return c.dir
}

// Get returns the statistics of every frame as (max, min, mean, std) sequences.
//
// With useCache set, the sidecar files are loaded and returned verbatim when
// all four are present and well formed. Any load failure is absorbed and
// triggers a recompute. Without useCache the statistics are always recomputed.
//
// A recompute creates the cache directory, reads every frame in order and
// only then overwrites the four sidecar files. If a frame cannot be read or
// the directory cannot be created, nothing is written.
//
// Returns:
//   - Summary: The four per-frame sequences
//   - error: A source error from frame retrieval, or source.ErrIO for cache directory and write failures
func (c *Cache) Get(useCache bool) (Summary, error) {
	if useCache {
		summary, err := c.Load()
		if err == nil {
			c.logger.Debug("stats cache hit", zap.String("dir", c.dir), zap.Int("frames", summary.Len()))
			return summary, nil
		}
		c.logger.Debug("stats cache miss", zap.String("dir", c.dir), zap.Error(err))
	}

	if err := c.ensureDir(); err != nil {
		return Summary{}, err
	}

	summary, err := c.Compute()
	if err != nil {
		return Summary{}, err
	}

	if err := c.write(summary); err != nil {
		return Summary{}, err
	}

	return summary, nil
}

// Load reads the four sidecar files.
//
// Returns:
//   - Summary: The cached sequences, exactly as stored
//   - error: A filesystem error for missing or unreadable files, ErrMalformedCache
//     for unparsable content, ErrStaleCache under WithLengthCheck
func (c *Cache) Load() (Summary, error) {
	var summary Summary
	targets := []struct {
		name string
		dst  *[]float64
	}{
		{MaxFile, &summary.Max},
		{MinFile, &summary.Min},
		{MeanFile, &summary.Mean},
		{StdFile, &summary.Std},
	}

	for _, target := range targets {
		path := filepath.Join(c.dir, target.name)

		data, err := os.ReadFile(path)
		if err != nil {
			return Summary{}, err
		}

		values, err := decodeSidecar(data)
		if err != nil {
			return Summary{}, fmt.Errorf("%s: %w", path, err)
		}

		if c.lengthCheck && len(values) != c.reader.FrameCount() {
			return Summary{}, fmt.Errorf("%w: %s holds %d values for %d frames",
				ErrStaleCache, path, len(values), c.reader.FrameCount())
		}

		*target.dst = values
	}

	return summary, nil
}

// Compute reads every frame and computes its statistics without touching the cache.
func (c *Cache) Compute() (Summary, error) {
	n := c.reader.FrameCount()
	summary := newSummary(n)

	c.logger.Debug("computing frame statistics", zap.String("source", c.reader.Path()), zap.Int("frames", n))

	for i := 0; i < n; i++ {
		frame, err := c.reader.Frame(i)
		if err != nil {
			return Summary{}, err
		}
		summary.append(FrameStats(frame))
	}

	return summary, nil
}

// Save writes summary to the four sidecar files, creating the cache directory
// when needed and replacing existing content.
func (c *Cache) Save(summary Summary) error {
	if err := c.ensureDir(); err != nil {
		return err
	}

	return c.write(summary)
}

func (c *Cache) ensureDir() error {
	err := os.Mkdir(c.dir, cacheDirPerm)
	if err != nil && !errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: create stats cache directory: %w", source.ErrIO, err)
	}

	return nil
}

func (c *Cache) write(summary Summary) error {
	if !summary.Consistent() {
		return fmt.Errorf("%w: sequence lengths max=%d min=%d mean=%d std=%d", ErrInvalidSummary,
			len(summary.Max), len(summary.Min), len(summary.Mean), len(summary.Std))
	}

	files := [sidecarsCount]struct {
		name   string
		values []float64
	}{
		{MaxFile, summary.Max},
		{MinFile, summary.Min},
		{MeanFile, summary.Mean},
		{StdFile, summary.Std},
	}

	bb := pool.GetSidecarBuffer()
	defer pool.PutSidecarBuffer(bb)

	for _, f := range files {
		bb.Reset()
		encodeSidecar(bb, f.values)

		if err := fsx.WriteFileAtomic(c.dir, f.name, bb.Bytes(), sidecarPerm); err != nil {
			return fmt.Errorf("%w: write %s: %w", source.ErrIO, filepath.Join(c.dir, f.name), err)
		}
	}

	c.logger.Debug("stats cache written", zap.String("dir", c.dir), zap.Int("frames", summary.Len()))

	return nil
}
