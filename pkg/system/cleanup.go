package system

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// CleanupManager runs registered shutdown callbacks, such as flushing spans
// or closing event streams, before the process exits.
type CleanupManager struct {
	mu      sync.Mutex
	fns     []func() error
	fnsDone bool
}

// NewCleanupManager returns a new CleanupManager instance.
func NewCleanupManager() *CleanupManager {
	return &CleanupManager{}
}

// RegisterCallback registers a clean-up function.
func (cm *CleanupManager) RegisterCallback(fn func() error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.fnsDone {
		log.Error().Msg("CleanupManager: RegisterCallback called after Cleanup")
		return
	}
	cm.fns = append(cm.fns, fn)
}

// Cleanup runs all registered callbacks concurrently and waits for them, or
// until ctx is done. Only the first call has any effect.
func (cm *CleanupManager) Cleanup(ctx context.Context) {
	cm.mu.Lock()
	if cm.fnsDone {
		cm.mu.Unlock()
		log.Ctx(ctx).Warn().Msg("CleanupManager: Cleanup called again after already called")
		return
	}
	cm.fnsDone = true
	fns := cm.fns
	cm.fns = nil
	cm.mu.Unlock()

	var wg sync.WaitGroup
	for _, fn := range fns {
		wg.Add(1)
		go func(fn func() error) {
			defer wg.Done()
			if err := fn(); err != nil && !errors.Is(err, context.Canceled) {
				log.Ctx(ctx).Error().Err(err).Msg("Error during clean-up callback")
			}
		}(fn)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Ctx(ctx).Warn().Err(ctx.Err()).Msg("CleanupManager: gave up waiting for clean-up callbacks")
	}
}

// CleanupWithTimeout is Cleanup bounded by timeout, for use after the
// command context has already been cancelled.
func (cm *CleanupManager) CleanupWithTimeout(timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	cm.Cleanup(ctx)
}
