package monitor

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/HerbHall/dockpulse/internal/probe"
)

func TestNormalize_RawValues(t *testing.T) {
	tests := []struct {
		raw  string
		want Status
	}{
		{"healthy", StatusHealthy},
		{"running", StatusRunning},
		{"starting", StatusStarting},
		{"unhealthy", StatusUnhealthy},
		{"exited", StatusExited},
		{"Healthy", StatusHealthy},
		{"  exited \n", StatusExited},
		{"restarting", StatusUnknown},
		{"paused", StatusUnknown},
		{"dead", StatusUnknown},
		{"", StatusUnknown},
	}

	for _, tt := range tests {
		if got := Normalize(tt.raw, nil); got != tt.want {
			t.Errorf("Normalize(%q, nil) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestNormalize_ProbeErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Status
	}{
		{"timeout sentinel", fmt.Errorf("%w: web", probe.ErrTimeout), StatusTimeout},
		{"context deadline", context.DeadlineExceeded, StatusTimeout},
		{"not found", fmt.Errorf("%w: web", probe.ErrNotFound), StatusUnknown},
		{"other error", errors.New("daemon unreachable"), StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize("", tt.err); got != tt.want {
				t.Errorf("Normalize(_, %v) = %s, want %s", tt.err, got, tt.want)
			}
		})
	}
}

func TestStatus_Good(t *testing.T) {
	good := []Status{StatusHealthy, StatusRunning, StatusStarting}
	bad := []Status{StatusUnhealthy, StatusExited, StatusTimeout, StatusUnknown, Status("unavailable")}

	for _, s := range good {
		if !s.Good() {
			t.Errorf("%s.Good() = false, want true", s)
		}
	}
	for _, s := range bad {
		if s.Good() {
			t.Errorf("%s.Good() = true, want false", s)
		}
	}
}
