package cache

import (
	"context"
	"sync"
	"time"
)

// sweeper owns the background goroutine that periodically reclaims expired
// entries nobody has read since they expired. Lazy expiry on Get/Has stays
// authoritative; the sweep only bounds memory held by dead entries.
type sweeper struct {
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// startSweeper runs fn every interval until stop is called.
func startSweeper(interval time.Duration, fn func()) *sweeper {
	ctx, cancel := context.WithCancel(context.Background())
	sw := &sweeper{cancel: cancel}

	sw.wg.Add(1)
	go func() {
		defer sw.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fn()
			}
		}
	}()
	return sw
}

// stop cancels the loop and waits for an in-flight pass to finish.
// Safe to call multiple times.
func (sw *sweeper) stop() {
	sw.once.Do(func() {
		sw.cancel()
		sw.wg.Wait()
	})
}
