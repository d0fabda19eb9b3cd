package monitor

import (
	"testing"
	"time"
)

func TestClassify_FirstObservation(t *testing.T) {
	now := time.Now().UTC()

	// First-seen good statuses are not newsworthy.
	for _, cur := range []Status{StatusHealthy, StatusRunning, StatusStarting} {
		if got := Classify("web", "", false, cur, now); got != nil {
			t.Errorf("Classify(first seen, %s) = %+v, want nil", cur, got)
		}
	}

	// First-seen bad statuses emit first_seen.
	for _, cur := range []Status{StatusUnhealthy, StatusExited, StatusTimeout, StatusUnknown} {
		got := Classify("web", "", false, cur, now)
		if got == nil {
			t.Fatalf("Classify(first seen, %s) = nil, want first_seen event", cur)
		}
		if got.Kind != KindFirstSeen {
			t.Errorf("Classify(first seen, %s).Kind = %s, want %s", cur, got.Kind, KindFirstSeen)
		}
		if got.To != cur || got.Container != "web" {
			t.Errorf("event = %+v, want container web, to %s", got, cur)
		}
	}
}

func TestClassify_SteadyState(t *testing.T) {
	now := time.Now().UTC()
	all := []Status{StatusHealthy, StatusRunning, StatusStarting, StatusUnhealthy, StatusExited, StatusTimeout, StatusUnknown}

	for _, s := range all {
		if got := Classify("web", s, true, s, now); got != nil {
			t.Errorf("Classify(%s -> %s) = %+v, want nil", s, s, got)
		}
	}
}

func TestClassify_Transitions(t *testing.T) {
	now := time.Now().UTC()
	tests := []struct {
		name string
		prev Status
		cur  Status
		want Kind
	}{
		{"good to bad", StatusHealthy, StatusUnhealthy, KindAlert},
		{"good to exited", StatusRunning, StatusExited, KindAlert},
		{"good to timeout", StatusHealthy, StatusTimeout, KindAlert},
		{"bad to different bad", StatusUnhealthy, StatusTimeout, KindAlert},
		{"exited to unknown", StatusExited, StatusUnknown, KindAlert},
		{"bad to good", StatusUnhealthy, StatusHealthy, KindRecovery},
		{"timeout to running", StatusTimeout, StatusRunning, KindRecovery},
		{"good to different good", StatusRunning, StatusHealthy, KindStateChange},
		{"healthy to starting", StatusHealthy, StatusStarting, KindStateChange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify("db", tt.prev, true, tt.cur, now)
			if got == nil {
				t.Fatalf("Classify(%s -> %s) = nil, want %s", tt.prev, tt.cur, tt.want)
			}
			if got.Kind != tt.want {
				t.Errorf("Classify(%s -> %s).Kind = %s, want %s", tt.prev, tt.cur, got.Kind, tt.want)
			}
			if got.From != tt.prev || got.To != tt.cur {
				t.Errorf("event = %+v, want from %s, to %s", got, tt.prev, tt.cur)
			}
		})
	}
}

func TestClassify_ExhaustivePairs(t *testing.T) {
	// Every (prev, cur) pair must resolve to a deterministic outcome; the
	// classification table is total.
	now := time.Now().UTC()
	all := []Status{StatusHealthy, StatusRunning, StatusStarting, StatusUnhealthy, StatusExited, StatusTimeout, StatusUnknown}

	for _, prev := range all {
		for _, cur := range all {
			got := Classify("x", prev, true, cur, now)
			switch {
			case prev == cur:
				if got != nil {
					t.Errorf("Classify(%s -> %s) = %+v, want nil", prev, cur, got)
				}
			case !cur.Good():
				if got == nil || got.Kind != KindAlert {
					t.Errorf("Classify(%s -> %s) = %+v, want alert", prev, cur, got)
				}
			case !prev.Good():
				if got == nil || got.Kind != KindRecovery {
					t.Errorf("Classify(%s -> %s) = %+v, want recovery", prev, cur, got)
				}
			default:
				if got == nil || got.Kind != KindStateChange {
					t.Errorf("Classify(%s -> %s) = %+v, want state_change", prev, cur, got)
				}
			}
		}
	}
}
