// Package monitor implements the core monitoring cycle: status
// normalization, transition classification, batching, and notification
// composition for a fixed set of containers.
package monitor

import (
	"context"
	"errors"
	"strings"

	"github.com/HerbHall/dockpulse/internal/probe"
)

// Status is the canonical health classification of a container,
// independent of the raw vocabulary the probe reports.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusRunning   Status = "running"
	StatusStarting  Status = "starting"
	StatusUnhealthy Status = "unhealthy"
	StatusExited    Status = "exited"
	StatusTimeout   Status = "timeout"
	StatusUnknown   Status = "unknown"
)

// goodStates is the exhaustive good/bad partition of the canonical enum.
// Any status not listed here is bad, including values read back from an
// older snapshot file that this binary no longer recognizes.
var goodStates = map[Status]bool{
	StatusHealthy:  true,
	StatusRunning:  true,
	StatusStarting: true,
}

// Good reports whether s is a healthy-adjacent state.
func (s Status) Good() bool {
	return goodStates[s]
}

// rawStates maps the recognized probe vocabulary to canonical statuses.
var rawStates = map[string]Status{
	"healthy":   StatusHealthy,
	"running":   StatusRunning,
	"starting":  StatusStarting,
	"unhealthy": StatusUnhealthy,
	"exited":    StatusExited,
}

// Normalize maps a raw probe result to a canonical status. It is total:
// probe failures become StatusTimeout or StatusUnknown, and unrecognized
// raw values become StatusUnknown rather than errors. "The monitor cannot
// determine health" is itself an alertable status.
func Normalize(raw string, err error) Status {
	if err != nil {
		if errors.Is(err, probe.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
			return StatusTimeout
		}
		return StatusUnknown
	}
	if s, ok := rawStates[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	return StatusUnknown
}

// Snapshot maps container names to the canonical status observed in the
// last completed cycle. It is rebuilt from scratch every cycle; entries
// for containers no longer configured are dropped on the next save.
type Snapshot map[string]Status
