package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// LockService serializes the mutating engine operations per
// (user, challenge) pair. A process-local keyed mutex always applies; a
// redis SETNX lease extends the exclusion across instances. When redis is
// unreachable the local mutex still holds, which together with the store's
// version guards keeps the cascade safe.
type LockService struct {
	appContext.DefaultService

	redisSvc *RedisService

	mu    sync.Mutex
	locks map[string]*lockEntry

	leaseTTL time.Duration
}

// lockEntry is reference counted so idle keys drop out of the map instead
// of accumulating one mutex per pair ever locked.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

const LOCK_SVC = "lock_svc"

func (svc LockService) Id() string {
	return LOCK_SVC
}

func (svc *LockService) Configure(ctx *appContext.Context) error {
	svc.locks = make(map[string]*lockEntry)
	svc.leaseTTL = 15 * time.Second
	return svc.DefaultService.Configure(ctx)
}

func (svc *LockService) Start() error {
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

func (svc *LockService) checkout(key string) *lockEntry {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	e, ok := svc.locks[key]
	if !ok {
		e = &lockEntry{}
		svc.locks[key] = e
	}
	e.refs++
	return e
}

func (svc *LockService) checkin(key string, e *lockEntry) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(svc.locks, key)
	}
}

// WithLock runs fn while holding the lock for key.
func (svc *LockService) WithLock(key string, fn func() error) error {
	e := svc.checkout(key)
	defer svc.checkin(key, e)

	e.mu.Lock()
	defer e.mu.Unlock()

	release := svc.acquireLease(key)
	defer release()

	return fn()
}

func (svc *LockService) acquireLease(key string) func() {
	ctx, cancel := context.WithTimeout(context.Background(), svc.leaseTTL)
	defer cancel()

	token := uuid.New().String()
	leaseKey := fmt.Sprintf("lock:%s", key)

	for {
		ok, err := svc.redisSvc.SetNX(ctx, leaseKey, token, svc.leaseTTL)
		if err != nil {
			log.WithError(err).WithField("key", key).Warn("Redis lease unavailable, falling back to local lock")
			return func() {}
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			log.WithField("key", key).Warn("Timed out waiting for redis lease, proceeding under local lock")
			return func() {}
		case <-time.After(50 * time.Millisecond):
		}
	}

	return func() {
		releaseCtx, releaseCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer releaseCancel()

		if err := svc.redisSvc.CompareAndDelete(releaseCtx, leaseKey, token); err != nil {
			log.WithError(err).WithField("key", key).Warn("Failed to release redis lease")
		}
	}
}
