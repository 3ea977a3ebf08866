package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"libraryapi/internal/cache"
	"libraryapi/internal/platform/openlibrary"

	"github.com/stretchr/testify/assert"
)

func countingSearch(calls *int64, err error) cache.SearchFunc {
	return func(ctx context.Context, query, author string, limit int) (*openlibrary.SearchResult, error) {
		atomic.AddInt64(calls, 1)
		if err != nil {
			return nil, err
		}
		return &openlibrary.SearchResult{NumFound: 1, Docs: []openlibrary.Doc{{Title: query}}}, nil
	}
}

func TestSearchCache_RepeatedKeyCallsRemoteOnce(t *testing.T) {
	var calls int64
	c := cache.NewSearchCache(4, countingSearch(&calls, nil))
	ctx := context.Background()

	first, err := c.Get(ctx, "dune", "", 5)
	assert.NoError(t, err)
	second, err := c.Get(ctx, "dune", "", 5)
	assert.NoError(t, err)

	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
	assert.Same(t, first, second)

	info := c.Info()
	assert.Equal(t, uint64(1), info.Hits)
	assert.Equal(t, uint64(1), info.Misses)
	assert.Equal(t, 1, info.CurrSize)
	assert.Equal(t, 4, info.MaxSize)
}

func TestSearchCache_DistinctKeysCallRemoteSeparately(t *testing.T) {
	var calls int64
	c := cache.NewSearchCache(4, countingSearch(&calls, nil))
	ctx := context.Background()

	_, _ = c.Get(ctx, "dune", "", 5)
	_, _ = c.Get(ctx, "dune", "", 10)
	_, _ = c.Get(ctx, "dune", "herbert", 5)
	_, _ = c.Get(ctx, "Dune", "", 5)

	assert.Equal(t, int64(4), atomic.LoadInt64(&calls))
	assert.Equal(t, 4, c.Info().CurrSize)
}

func TestSearchCache_ErrorsAreNotCached(t *testing.T) {
	var calls int64
	boom := errors.New("remote down")
	c := cache.NewSearchCache(4, countingSearch(&calls, boom))
	ctx := context.Background()

	_, err := c.Get(ctx, "dune", "", 5)
	assert.ErrorIs(t, err, boom)
	_, err = c.Get(ctx, "dune", "", 5)
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, int64(2), atomic.LoadInt64(&calls))
	assert.Equal(t, 0, c.Info().CurrSize)
}

func TestSearchCache_ClearResetsEntriesAndCounters(t *testing.T) {
	var calls int64
	c := cache.NewSearchCache(4, countingSearch(&calls, nil))
	ctx := context.Background()

	_, _ = c.Get(ctx, "dune", "", 5)
	_, _ = c.Get(ctx, "dune", "", 5)

	c.Clear()

	info := c.Info()
	assert.Equal(t, uint64(0), info.Hits)
	assert.Equal(t, uint64(0), info.Misses)
	assert.Equal(t, 0, info.CurrSize)

	_, _ = c.Get(ctx, "dune", "", 5)
	assert.Equal(t, int64(2), atomic.LoadInt64(&calls))
}

func TestSearchCache_EvictsLeastRecentlyUsed(t *testing.T) {
	var calls int64
	c := cache.NewSearchCache(2, countingSearch(&calls, nil))
	ctx := context.Background()

	_, _ = c.Get(ctx, "a", "", 5)
	_, _ = c.Get(ctx, "b", "", 5)
	_, _ = c.Get(ctx, "c", "", 5) // evicts "a"
	_, _ = c.Get(ctx, "a", "", 5)

	assert.Equal(t, int64(4), atomic.LoadInt64(&calls))
	assert.Equal(t, 2, c.Info().CurrSize)
}

func TestSearchCache_ConcurrentSameKeySharesFlight(t *testing.T) {
	var calls int64
	release := make(chan struct{})
	search := func(ctx context.Context, query, author string, limit int) (*openlibrary.SearchResult, error) {
		atomic.AddInt64(&calls, 1)
		<-release
		return &openlibrary.SearchResult{NumFound: 1}, nil
	}
	c := cache.NewSearchCache(4, search)
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	started := make(chan struct{}, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			started <- struct{}{}
			res, err := c.Get(ctx, "dune", "", 5)
			assert.NoError(t, err)
			assert.Equal(t, 1, res.NumFound)
		}()
	}
	for i := 0; i < workers; i++ {
		<-started
	}
	// give every worker time to reach the shared flight before releasing it
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	// All workers that missed before the first call completed share its flight.
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
}
