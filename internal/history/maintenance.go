package history

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Maintainer periodically prunes transitions older than the retention
// period.
type Maintainer struct {
	store     *Store
	retention time.Duration
	interval  time.Duration
	logger    *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewMaintainer creates a maintainer that prunes every interval.
func NewMaintainer(store *Store, retention, interval time.Duration, logger *zap.Logger) *Maintainer {
	return &Maintainer{
		store:     store,
		retention: retention,
		interval:  interval,
		logger:    logger,
	}
}

// Start launches the background pruning loop.
func (m *Maintainer) Start(ctx context.Context) {
	m.ctx, m.cancel = context.WithCancel(ctx)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-m.ctx.Done():
				return
			case <-ticker.C:
				m.prune()
			}
		}
	}()
}

// Stop signals the maintainer to stop and waits for completion.
func (m *Maintainer) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
}

// prune executes a single retention pass.
func (m *Maintainer) prune() {
	ctx, cancel := context.WithTimeout(m.ctx, 30*time.Second)
	defer cancel()

	cutoff := time.Now().UTC().Add(-m.retention)
	deleted, err := m.store.DeleteBefore(ctx, cutoff)
	if err != nil {
		m.logger.Warn("failed to prune old transitions", zap.Error(err))
		return
	}
	if deleted > 0 {
		m.logger.Info("purged old transitions", zap.Int64("count", deleted))
	}
}
