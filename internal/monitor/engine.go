package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/HerbHall/dockpulse/internal/notify"
	"github.com/HerbHall/dockpulse/internal/probe"
	"go.uber.org/zap"
)

// SnapshotStore persists the per-container status snapshot between cycles.
// Load returns an empty snapshot (not an error) when no snapshot exists yet.
type SnapshotStore interface {
	Load() (Snapshot, error)
	Save(Snapshot) error
}

// Recorder receives the transitions of a completed cycle for retention.
type Recorder interface {
	Record(ctx context.Context, batch []Transition) error
}

// CycleReport summarizes the last completed cycle.
type CycleReport struct {
	CompletedAt time.Time    `json:"completed_at"`
	Snapshot    Snapshot     `json:"snapshot"`
	Events      []Transition `json:"events"`
}

// EngineParams holds the collaborators an Engine is wired with.
// Recorder and Metrics are optional.
type EngineParams struct {
	Containers   []string
	Prober       probe.Prober
	ProbeTimeout time.Duration
	Snapshots    SnapshotStore
	Composer     Composer
	Notifiers    []notify.Notifier
	Recorder     Recorder
	Metrics      *Metrics
	Logger       *zap.Logger
}

// Engine runs complete monitoring cycles: load the previous snapshot,
// probe and classify every container, deliver at most one notification,
// then persist the new snapshot. Cycles are strictly serialized by the
// caller; the engine itself holds no cross-cycle state beyond the report
// of the last completed cycle.
type Engine struct {
	containers []string
	prober     probe.Prober
	timeout    time.Duration
	snapshots  SnapshotStore
	composer   Composer
	notifiers  []notify.Notifier
	recorder   Recorder
	metrics    *Metrics
	logger     *zap.Logger

	mu   sync.Mutex
	last *CycleReport
}

// NewEngine creates an engine from the given collaborators.
func NewEngine(p EngineParams) *Engine {
	return &Engine{
		containers: p.Containers,
		prober:     p.Prober,
		timeout:    p.ProbeTimeout,
		snapshots:  p.Snapshots,
		composer:   p.Composer,
		notifiers:  p.Notifiers,
		recorder:   p.Recorder,
		metrics:    p.Metrics,
		logger:     p.Logger,
	}
}

// RunOnce executes one complete monitoring cycle.
//
// A snapshot load failure aborts the cycle before any notification is
// sent. Notification failures are logged per channel and never block
// persistence. A save failure is returned after notifications have gone
// out; the un-persisted snapshot simply causes the same transitions to
// fire again next cycle, which is preferable to losing them.
func (e *Engine) RunOnce(ctx context.Context) error {
	prev, err := e.snapshots.Load()
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	batch, next := Cycle(ctx, e.containers, prev, e.prober, e.timeout, e.logger)

	if msg := e.composer.Compose(batch); msg != nil {
		for _, n := range e.notifiers {
			if sendErr := n.Send(ctx, msg.Subject, msg.Body); sendErr != nil {
				e.logger.Warn("notification delivery failed",
					zap.String("notifier", n.Type()),
					zap.Int("events", len(batch)),
					zap.Error(sendErr),
				)
				if e.metrics != nil {
					e.metrics.NotifyFailures.Inc()
				}
				continue
			}
			e.logger.Info("notification delivered",
				zap.String("notifier", n.Type()),
				zap.Int("events", len(batch)),
			)
		}
	}

	var saveErr error
	if err := e.snapshots.Save(next); err != nil {
		saveErr = fmt.Errorf("save snapshot: %w", err)
	}

	if e.recorder != nil && len(batch) > 0 {
		if err := e.recorder.Record(ctx, batch); err != nil {
			e.logger.Warn("failed to record transitions", zap.Error(err))
		}
	}

	unhealthy := 0
	for _, status := range next {
		if !status.Good() {
			unhealthy++
		}
	}

	if e.metrics != nil {
		e.metrics.CyclesTotal.Inc()
		e.metrics.UnhealthyContainers.Set(float64(unhealthy))
		for _, t := range batch {
			e.metrics.TransitionsTotal.WithLabelValues(string(t.Kind)).Inc()
		}
	}

	e.mu.Lock()
	e.last = &CycleReport{CompletedAt: time.Now().UTC(), Snapshot: next, Events: batch}
	e.mu.Unlock()

	e.logger.Info("monitoring cycle complete",
		zap.Int("containers", len(e.containers)),
		zap.Int("transitions", len(batch)),
		zap.Int("unhealthy", unhealthy),
	)

	return saveErr
}

// LastReport returns the report of the last completed cycle, if any.
func (e *Engine) LastReport() (CycleReport, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.last == nil {
		return CycleReport{}, false
	}
	return *e.last, true
}
