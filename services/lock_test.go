package services

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The redis client is left unconfigured, so the lease attempt errors out
// immediately and WithLock runs under the local mutex alone.
func newTestLockService() *LockService {
	return &LockService{
		redisSvc: &RedisService{},
		locks:    make(map[string]*lockEntry),
		leaseTTL: 50 * time.Millisecond,
	}
}

func TestWithLock_SerializesSameKey(t *testing.T) {
	svc := newTestLockService()

	var active, overlaps int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := svc.WithLock("u1|ch1", func() error {
				if atomic.AddInt32(&active, 1) > 1 {
					atomic.AddInt32(&overlaps, 1)
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&active, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Zero(t, atomic.LoadInt32(&overlaps))
}

func TestWithLock_DropsIdleEntries(t *testing.T) {
	svc := newTestLockService()

	err := svc.WithLock("u1|ch1", func() error {
		svc.mu.Lock()
		defer svc.mu.Unlock()
		assert.Len(t, svc.locks, 1)
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, svc.WithLock("u2|ch1", func() error { return nil }))

	svc.mu.Lock()
	defer svc.mu.Unlock()
	assert.Empty(t, svc.locks)
}

func TestWithLock_KeepsEntryWhileContended(t *testing.T) {
	svc := newTestLockService()

	entered := make(chan struct{})
	finish := make(chan struct{})
	done := make(chan struct{})

	go func() {
		_ = svc.WithLock("u1|ch1", func() error {
			close(entered)
			<-finish
			return nil
		})
	}()
	<-entered

	go func() {
		_ = svc.WithLock("u1|ch1", func() error { return nil })
		close(done)
	}()

	// Both holders checked out; the entry must survive the first release.
	require.Eventually(t, func() bool {
		svc.mu.Lock()
		defer svc.mu.Unlock()
		e, ok := svc.locks["u1|ch1"]
		return ok && e.refs == 2
	}, time.Second, time.Millisecond)

	close(finish)
	<-done

	svc.mu.Lock()
	defer svc.mu.Unlock()
	assert.Empty(t, svc.locks)
}
