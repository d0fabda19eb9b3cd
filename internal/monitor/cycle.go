package monitor

import (
	"context"
	"time"

	"github.com/HerbHall/dockpulse/internal/probe"
	"go.uber.org/zap"
)

// Cycle probes every container in the configured order, classifies each
// result against the previous snapshot, and returns the ordered transition
// batch plus a fresh snapshot for this cycle.
//
// Probe failures are normalized into statuses, never propagated: one
// unreachable container does not abort the cycle. The returned snapshot
// contains exactly one entry per container polled this cycle; nothing is
// carried over from prev except the per-container previous value used for
// classification.
func Cycle(ctx context.Context, containers []string, prev Snapshot, prober probe.Prober, timeout time.Duration, logger *zap.Logger) ([]Transition, Snapshot) {
	next := make(Snapshot, len(containers))
	var batch []Transition
	now := time.Now().UTC()

	for _, name := range containers {
		probeCtx, cancel := context.WithTimeout(ctx, timeout)
		raw, err := prober.Probe(probeCtx, name)
		cancel()

		status := Normalize(raw, err)
		if err != nil {
			logger.Debug("probe failed",
				zap.String("container", name),
				zap.String("status", string(status)),
				zap.Error(err),
			)
		}

		prevStatus, seen := prev[name]
		if t := Classify(name, prevStatus, seen, status, now); t != nil {
			batch = append(batch, *t)
		}
		next[name] = status
	}

	return batch, next
}
