// Package stats computes and caches per-frame summary statistics for raw frame files.
//
// For every frame of a source the package derives four scalars: maximum,
// minimum, arithmetic mean and population standard deviation (divide by N).
// The four sequences are persisted next to the source file so later runs can
// load them instead of reading every frame again.
//
// # Cache Layout
//
// For a source file dir/name the cache lives in the hidden sibling directory
// dir/.image_stats_name and holds one text file per statistic:
//
//	dir/
//	├── name
//	└── .image_stats_name/
//	    ├── imax.txt
//	    ├── imin.txt
//	    ├── imean.txt
//	    └── istd.txt
//
// Each file contains one number per line in frame order, written in numpy's
// savetxt default format (%.18e). Caches produced by other tools following
// the same convention are read as-is.
//
// # Basic Usage
//
//	cache, err := stats.New(src)
//	if err != nil {
//	    return err
//	}
//	summary, err := cache.Get(true)
//
// Get(true) returns the cached sequences when all four files load, and
// recomputes and rewrites them otherwise. Get(false) always recomputes.
// Loaded caches are not checked against the source's frame count unless
// WithLengthCheck is given.
//
// # Concurrency
//
// Cache performs no locking. Two processes recomputing the same cache race;
// each sidecar file is replaced atomically, but the four files are not
// replaced as a unit.
package stats
