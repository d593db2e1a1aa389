package regexcache_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Quaverflow/deepdelta/regexcache"
)

// TestCache_CompileOncePerPattern verifies the at-most-once contract via
// pointer identity of the compiled regexp.
func TestCache_CompileOncePerPattern(t *testing.T) {
	c, err := regexcache.New(8)
	require.NoError(t, err)

	first, err := c.Get(`^v\d+$`)
	require.NoError(t, err)
	second, err := c.Get(`^v\d+$`)
	require.NoError(t, err)
	assert.Same(t, first, second, "second hit returns the cached compile")
	assert.True(t, first.MatchString("v12"))
}

// TestCache_InvalidPattern propagates the compile error and caches nothing.
func TestCache_InvalidPattern(t *testing.T) {
	c, err := regexcache.New(8)
	require.NoError(t, err)

	_, err = c.Get(`([`)
	assert.Error(t, err, "bad patterns fail loudly")
	_, err = c.Get(`([`)
	assert.Error(t, err, "and keep failing; errors are not cached as successes")
}

// TestCache_ConcurrentAccess hammers one pattern from many goroutines; the
// race detector plus pointer identity cover the locking contract.
func TestCache_ConcurrentAccess(t *testing.T) {
	c, err := regexcache.New(8)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]any, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			re, err := c.Get(`\d{4}-\d{2}`)
			if err == nil {
				results[slot] = re
			}
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		require.NotNil(t, r)
		assert.Same(t, results[0], r, "every goroutine sees the same compile")
	}
}

// TestPackageLevelGet covers the process-wide cache.
func TestPackageLevelGet(t *testing.T) {
	re, err := regexcache.Get(`^ok$`)
	require.NoError(t, err)
	assert.True(t, re.MatchString("ok"))
}
