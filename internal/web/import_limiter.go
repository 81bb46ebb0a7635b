package web

// import_limiter.go bounds how many imports are parsed at once.
//
// Imports hold a whole request body in memory while it is parsed into a
// list. The limiter hands out a fixed number of slots; a request that cannot
// get one within maxWait fails with errTooManyImports.

import (
	"context"
	"fmt"
	"sync"
	"time"
)

var errTooManyImports = fmt.Errorf("%w: too many concurrent imports", errRateLimited)

const (
	defaultMaxConcurrentImports = 4
	defaultImportWait           = 10 * time.Second
)

// importLimiter is a counting semaphore over import requests.
type importLimiter struct {
	slots   chan struct{}
	maxWait time.Duration

	mu     sync.Mutex
	active int
}

func newImportLimiter(maxConcurrent int, maxWait time.Duration) *importLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrentImports
	}
	if maxWait <= 0 {
		maxWait = defaultImportWait
	}
	return &importLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// acquire waits for a free slot. Every nil return must be paired with
// release.
func (l *importLimiter) acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return errTooManyImports
	}
}

func (l *importLimiter) release() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()
	<-l.slots
}

// activeCount returns the number of imports holding a slot.
func (l *importLimiter) activeCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}

// waitForDrain blocks until no import holds a slot or ctx ends.
func (l *importLimiter) waitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.activeCount() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
