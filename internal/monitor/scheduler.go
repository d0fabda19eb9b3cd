package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CycleRunner executes one complete monitoring cycle.
type CycleRunner interface {
	RunOnce(ctx context.Context) error
}

// Scheduler runs monitoring cycles on a fixed interval. Cycles are
// strictly serialized: a tick that fires while the previous cycle is
// still running is delivered only after that cycle completes, so at most
// one cycle's state is ever live.
type Scheduler struct {
	runner   CycleRunner
	interval time.Duration
	logger   *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a scheduler that drives the runner every interval.
func NewScheduler(runner CycleRunner, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		runner:   runner,
		interval: interval,
		logger:   logger,
	}
}

// Start begins the polling loop. The first cycle runs immediately.
func (s *Scheduler) Start(ctx context.Context) {
	s.ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.tick()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.tick()
			}
		}
	}()
}

// Stop signals the scheduler to stop and waits for the in-flight cycle.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// Running reports whether the polling loop is active.
func (s *Scheduler) Running() bool {
	return s.ctx != nil && s.ctx.Err() == nil
}

// tick runs one cycle, bounded by the poll interval so a wedged cycle
// cannot pile up behind the ticker.
func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(s.ctx, s.interval)
	defer cancel()

	if err := s.runner.RunOnce(ctx); err != nil {
		s.logger.Warn("monitoring cycle failed", zap.Error(err))
	}
}
