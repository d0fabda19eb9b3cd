// Package probe queries the container runtime for current health status.
// The monitor core consumes raw status strings and sentinel errors from
// this package; it never talks to the runtime itself.
package probe

import (
	"context"
	"errors"
)

// Sentinel errors distinguished by the status normalizer. Both are
// non-fatal to a cycle: they normalize into statuses, not aborts.
var (
	ErrTimeout  = errors.New("probe timed out")
	ErrNotFound = errors.New("container not found")
)

// Prober reports the raw health status string for a named container.
type Prober interface {
	Probe(ctx context.Context, name string) (string, error)
}
