package web

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// ----------------------------------------------------------------------------
// importLimiter
// ----------------------------------------------------------------------------

func TestNewImportLimiter_Defaults(t *testing.T) {
	l := newImportLimiter(0, 0)
	if cap(l.slots) != defaultMaxConcurrentImports {
		t.Errorf("slots = %d, want %d", cap(l.slots), defaultMaxConcurrentImports)
	}
	if l.maxWait != defaultImportWait {
		t.Errorf("maxWait = %v, want %v", l.maxWait, defaultImportWait)
	}
}

func TestImportLimiter_AcquireRelease(t *testing.T) {
	l := newImportLimiter(2, time.Second)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := l.acquire(ctx); err != nil {
			t.Fatalf("acquire %d: %v", i, err)
		}
	}
	if got := l.activeCount(); got != 2 {
		t.Errorf("activeCount = %d, want 2", got)
	}

	l.release()
	l.release()
	if got := l.activeCount(); got != 0 {
		t.Errorf("activeCount after release = %d, want 0", got)
	}
}

func TestImportLimiter_Timeout(t *testing.T) {
	l := newImportLimiter(1, 20*time.Millisecond)
	if err := l.acquire(context.Background()); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer l.release()

	err := l.acquire(context.Background())
	if !errors.Is(err, errTooManyImports) {
		t.Fatalf("err = %v, want errTooManyImports", err)
	}
	if !errors.Is(err, errRateLimited) {
		t.Error("errTooManyImports should wrap errRateLimited")
	}
}

func TestImportLimiter_ContextCancelled(t *testing.T) {
	l := newImportLimiter(1, time.Minute)
	if err := l.acquire(context.Background()); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer l.release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.acquire(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestImportLimiter_Concurrent(t *testing.T) {
	const max = 3
	l := newImportLimiter(max, time.Second)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		current int
		peak    int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.acquire(context.Background()); err != nil {
				t.Error(err)
				return
			}
			mu.Lock()
			current++
			if current > peak {
				peak = current
			}
			mu.Unlock()

			time.Sleep(5 * time.Millisecond)

			mu.Lock()
			current--
			mu.Unlock()
			l.release()
		}()
	}
	wg.Wait()

	if peak > max {
		t.Errorf("peak concurrency = %d, want <= %d", peak, max)
	}
}

func TestImportLimiter_WaitForDrain(t *testing.T) {
	l := newImportLimiter(1, time.Second)
	if err := l.acquire(context.Background()); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	go func() {
		time.Sleep(20 * time.Millisecond)
		l.release()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := l.waitForDrain(ctx); err != nil {
		t.Fatalf("waitForDrain: %v", err)
	}
}
