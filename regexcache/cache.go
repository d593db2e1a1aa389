// Package regexcache is the shared, bounded cache of compiled regular
// expressions. The comparison engines never touch it; the declarative
// validation layer built on the same schemas does, and pays compilation for
// each pattern at most once.
package regexcache

import (
	"regexp"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize bounds the process-wide cache; old patterns evict LRU.
const DefaultSize = 256

// Cache is a bounded pattern → compiled-regexp cache with at-most-once
// compilation per pattern. Safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	patterns *lru.Cache[string, *regexp.Regexp]
}

// New builds a cache bounded to size entries.
func New(size int) (*Cache, error) {
	patterns, err := lru.New[string, *regexp.Regexp](size)
	if err != nil {
		return nil, err
	}

	return &Cache{patterns: patterns}, nil
}

// Get returns the compiled regexp for pattern, compiling on first sight.
// The lock spans the compile, so concurrent callers of a new pattern
// compile it exactly once.
func (c *Cache) Get(pattern string) (*regexp.Regexp, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if re, ok := c.patterns.Get(pattern); ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	c.patterns.Add(pattern, re)

	return re, nil
}

// std is the process-wide cache behind the package-level Get.
var std = func() *Cache {
	c, err := New(DefaultSize)
	if err != nil {
		panic(err) // DefaultSize is a positive constant; unreachable
	}

	return c
}()

// Get compiles-or-fetches against the process-wide cache.
func Get(pattern string) (*regexp.Regexp, error) { return std.Get(pattern) }
