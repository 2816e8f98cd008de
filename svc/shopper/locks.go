package shopper

import (
	"context"
	"sync"
)

// deviceLocks is a reference counted set of per-key locks.
// Entries are dropped once no request holds or waits for them.
type deviceLocks struct {
	mu    sync.Mutex
	locks map[string]*deviceLock
}

type deviceLock struct {
	sem  chan struct{}
	refs int
}

func newDeviceLocks() *deviceLocks {
	return &deviceLocks{locks: make(map[string]*deviceLock)}
}

// lock blocks until key is free or ctx is done.
func (d *deviceLocks) lock(ctx context.Context, key string) (func(), error) {
	d.mu.Lock()
	l, ok := d.locks[key]
	if !ok {
		l = &deviceLock{sem: make(chan struct{}, 1)}
		d.locks[key] = l
	}
	l.refs++
	d.mu.Unlock()

	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		d.release(key, l)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-l.sem
			d.release(key, l)
		})
	}, nil
}

func (d *deviceLocks) release(key string, l *deviceLock) {
	d.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(d.locks, key)
	}
	d.mu.Unlock()
}

func (d *deviceLocks) len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.locks)
}
