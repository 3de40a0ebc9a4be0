package langserver

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolRunsAllSubmittedJobs(t *testing.T) {
	pool := NewPool(context.Background(), 2)

	var count int32
	const jobs = 20
	for i := 0; i < jobs; i++ {
		pool.Submit(func() { atomic.AddInt32(&count, 1) })
	}

	require.NoError(t, pool.Wait())
	assert.EqualValues(t, jobs, count)
}

func TestPoolBoundsConcurrency(t *testing.T) {
	const limit = 3
	pool := NewPool(context.Background(), limit)

	var (
		mu       sync.Mutex
		inFlight int
		peak     int
	)
	release := make(chan struct{})

	for i := 0; i < limit*4; i++ {
		pool.Submit(func() {
			mu.Lock()
			inFlight++
			if inFlight > peak {
				peak = inFlight
			}
			mu.Unlock()

			<-release

			mu.Lock()
			inFlight--
			mu.Unlock()
		})
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	require.NoError(t, pool.Wait())

	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, peak, limit)
}

func TestPoolDefaultsToNumCPU(t *testing.T) {
	pool := NewPool(context.Background(), 0)
	assert.NotNil(t, pool.sem)
	assert.Greater(t, cap(pool.sem), 0)
}

func TestPoolStopsSubmittingAfterContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewPool(ctx, 1)

	holding := make(chan struct{})
	release := make(chan struct{})
	pool.Submit(func() {
		close(holding)
		<-release
	})
	<-holding // the single slot is now occupied

	cancel()
	pool.Submit(func() {}) // must observe ctx.Done() since the slot is full
	close(release)

	assert.Error(t, pool.Wait())
}
