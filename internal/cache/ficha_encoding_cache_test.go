package cache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"facelog-be/internal/pkg/facematch"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLoader struct {
	mu      sync.Mutex
	calls   int32
	delay   time.Duration
	rosters map[uuid.UUID][]facematch.KnownEncoding
	err     error
}

func (l *countingLoader) ActiveForFicha(ctx context.Context, fichaId uuid.UUID) ([]facematch.KnownEncoding, error) {
	atomic.AddInt32(&l.calls, 1)
	if l.delay > 0 {
		time.Sleep(l.delay)
	}
	if l.err != nil {
		return nil, l.err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rosters[fichaId], nil
}

func makeEncoding(studentId uuid.UUID) facematch.KnownEncoding {
	return facematch.KnownEncoding{
		StudentId: studentId,
		Encoding:  make(facematch.Embedding, facematch.EncodingDim),
	}
}

func TestEnsureWarm_ConcurrentMissesShareOneLoad(t *testing.T) {
	fichaId := uuid.New()
	loader := &countingLoader{
		delay: 50 * time.Millisecond,
		rosters: map[uuid.UUID][]facematch.KnownEncoding{
			fichaId: {makeEncoding(uuid.New()), makeEncoding(uuid.New())},
		},
	}
	c := NewFichaEncodingCache(loader, time.Hour, nil)

	const goroutines = 20
	var wg sync.WaitGroup
	results := make([][]facematch.KnownEncoding, goroutines)
	errs := make([]error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.EnsureWarm(context.Background(), fichaId)
		}(i)
	}
	wg.Wait()

	for i := 0; i < goroutines; i++ {
		require.NoError(t, errs[i])
		assert.Len(t, results[i], 2)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&loader.calls), "all waiters should share a single load")
}

func TestEnsureWarm_DistinctFichasLoadIndependently(t *testing.T) {
	fichaA := uuid.New()
	fichaB := uuid.New()
	loader := &countingLoader{
		rosters: map[uuid.UUID][]facematch.KnownEncoding{
			fichaA: {makeEncoding(uuid.New())},
			fichaB: {makeEncoding(uuid.New()), makeEncoding(uuid.New()), makeEncoding(uuid.New())},
		},
	}
	c := NewFichaEncodingCache(loader, time.Hour, nil)

	a, err := c.EnsureWarm(context.Background(), fichaA)
	require.NoError(t, err)
	b, err := c.EnsureWarm(context.Background(), fichaB)
	require.NoError(t, err)

	assert.Len(t, a, 1)
	assert.Len(t, b, 3)
	assert.Equal(t, int32(2), atomic.LoadInt32(&loader.calls))
}

func TestEnsureWarm_SecondCallHitsCache(t *testing.T) {
	fichaId := uuid.New()
	loader := &countingLoader{
		rosters: map[uuid.UUID][]facematch.KnownEncoding{
			fichaId: {makeEncoding(uuid.New())},
		},
	}
	c := NewFichaEncodingCache(loader, time.Hour, nil)

	_, err := c.EnsureWarm(context.Background(), fichaId)
	require.NoError(t, err)
	_, err = c.EnsureWarm(context.Background(), fichaId)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&loader.calls))
}

func TestEnsureWarm_EmptyRosterIsCached(t *testing.T) {
	fichaId := uuid.New()
	loader := &countingLoader{rosters: map[uuid.UUID][]facematch.KnownEncoding{}}
	c := NewFichaEncodingCache(loader, time.Hour, nil)

	known, err := c.EnsureWarm(context.Background(), fichaId)
	require.NoError(t, err)
	assert.Empty(t, known)

	// An empty roster is a legitimate value, not a miss to retry.
	_, err = c.EnsureWarm(context.Background(), fichaId)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&loader.calls))
}

func TestEnsureWarm_FailedLoadIsNotCached(t *testing.T) {
	fichaId := uuid.New()
	loader := &countingLoader{err: fmt.Errorf("connection refused")}
	c := NewFichaEncodingCache(loader, time.Hour, nil)

	_, err := c.EnsureWarm(context.Background(), fichaId)
	require.ErrorIs(t, err, ErrReloadFailed)

	// The failure must not poison the cache.
	loader.err = nil
	loader.mu.Lock()
	loader.rosters = map[uuid.UUID][]facematch.KnownEncoding{
		fichaId: {makeEncoding(uuid.New())},
	}
	loader.mu.Unlock()

	known, err := c.EnsureWarm(context.Background(), fichaId)
	require.NoError(t, err)
	assert.Len(t, known, 1)
	assert.Equal(t, int32(2), atomic.LoadInt32(&loader.calls))
}

func TestEnsureWarm_ConcurrentFailureSharedByWaiters(t *testing.T) {
	fichaId := uuid.New()
	loader := &countingLoader{
		delay: 50 * time.Millisecond,
		err:   fmt.Errorf("timeout"),
	}
	c := NewFichaEncodingCache(loader, time.Hour, nil)

	const goroutines = 10
	var wg sync.WaitGroup
	errs := make([]error, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.EnsureWarm(context.Background(), fichaId)
		}(i)
	}
	wg.Wait()

	for i := 0; i < goroutines; i++ {
		assert.ErrorIs(t, errs[i], ErrReloadFailed)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&loader.calls))
}

func TestInvalidate_ForcesReload(t *testing.T) {
	fichaId := uuid.New()
	loader := &countingLoader{
		rosters: map[uuid.UUID][]facematch.KnownEncoding{
			fichaId: {makeEncoding(uuid.New())},
		},
	}
	c := NewFichaEncodingCache(loader, time.Hour, nil)

	_, err := c.EnsureWarm(context.Background(), fichaId)
	require.NoError(t, err)

	c.Invalidate(fichaId)

	_, err = c.EnsureWarm(context.Background(), fichaId)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&loader.calls))
}
