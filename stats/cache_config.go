package stats

import (
	"errors"

	"go.uber.org/zap"

	"github.com/arloliu/mraw/internal/options"
)

// Option configures a Cache.
type Option = options.Option[*Cache]

// WithLogger sets the logger used for cache hit, miss and persist messages.
// Caches are silent by default.
func WithLogger(logger *zap.Logger) Option {
	return options.NoError(func(c *Cache) {
		if logger == nil {
			logger = zap.NewNop()
		}
		c.logger = logger
	})
}

// WithCacheDir overrides the cache directory derived by CacheDir.
//
// Only the last path element is created on demand; its parent must exist.
func WithCacheDir(dir string) Option {
	return options.New(func(c *Cache) error {
		if dir == "" {
			return errors.New("cache directory must not be empty")
		}
		c.dir = dir

		return nil
	})
}

// WithLengthCheck makes Load reject cached sequences whose length differs
// from the source's frame count, turning them into a recompute in Get.
//
// Without it stale caches are returned as they are on disk.
func WithLengthCheck() Option {
	return options.NoError(func(c *Cache) {
		c.lengthCheck = true
	})
}
