package monitor

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/HerbHall/dockpulse/internal/probe"
	"go.uber.org/zap"
)

// fakeProber returns canned statuses or errors per container name.
type fakeProber struct {
	statuses map[string]string
	errs     map[string]error
	calls    []string
}

func (f *fakeProber) Probe(_ context.Context, name string) (string, error) {
	f.calls = append(f.calls, name)
	if err, ok := f.errs[name]; ok {
		return "", err
	}
	return f.statuses[name], nil
}

func TestCycle_RecoveryAndFirstSeen(t *testing.T) {
	prober := &fakeProber{statuses: map[string]string{
		"web": "healthy",
		"db":  "exited",
	}}
	prev := Snapshot{"web": StatusUnhealthy}

	batch, next := Cycle(context.Background(), []string{"web", "db"}, prev, prober, time.Second, zap.NewNop())

	if len(batch) != 2 {
		t.Fatalf("got %d transitions, want 2: %+v", len(batch), batch)
	}
	if batch[0].Container != "web" || batch[0].Kind != KindRecovery || batch[0].To != StatusHealthy {
		t.Errorf("batch[0] = %+v, want recovery of web to healthy", batch[0])
	}
	if batch[1].Container != "db" || batch[1].Kind != KindFirstSeen || batch[1].To != StatusExited {
		t.Errorf("batch[1] = %+v, want first_seen of db as exited", batch[1])
	}

	want := Snapshot{"web": StatusHealthy, "db": StatusExited}
	if !reflect.DeepEqual(next, want) {
		t.Errorf("snapshot = %v, want %v", next, want)
	}
}

func TestCycle_TimeoutBecomesAlert(t *testing.T) {
	prober := &fakeProber{errs: map[string]error{
		"web": fmt.Errorf("%w: web", probe.ErrTimeout),
	}}
	prev := Snapshot{"web": StatusHealthy}

	batch, next := Cycle(context.Background(), []string{"web"}, prev, prober, time.Second, zap.NewNop())

	if len(batch) != 1 {
		t.Fatalf("got %d transitions, want 1: %+v", len(batch), batch)
	}
	if batch[0].Kind != KindAlert || batch[0].To != StatusTimeout {
		t.Errorf("batch[0] = %+v, want alert to timeout", batch[0])
	}
	if next["web"] != StatusTimeout {
		t.Errorf("snapshot[web] = %s, want %s", next["web"], StatusTimeout)
	}
}

func TestCycle_ProbeErrorDoesNotAbort(t *testing.T) {
	prober := &fakeProber{
		statuses: map[string]string{"db": "running"},
		errs:     map[string]error{"web": errors.New("daemon unreachable")},
	}

	batch, next := Cycle(context.Background(), []string{"web", "db"}, Snapshot{}, prober, time.Second, zap.NewNop())

	if len(prober.calls) != 2 {
		t.Fatalf("probed %v, want both containers", prober.calls)
	}
	if next["web"] != StatusUnknown || next["db"] != StatusRunning {
		t.Errorf("snapshot = %v, want web unknown and db running", next)
	}
	// web's failure is newsworthy, db's first-seen good status is not.
	if len(batch) != 1 || batch[0].Container != "web" || batch[0].Kind != KindFirstSeen {
		t.Errorf("batch = %+v, want single first_seen for web", batch)
	}
}

func TestCycle_SteadyStateEmitsNothing(t *testing.T) {
	prober := &fakeProber{statuses: map[string]string{
		"web": "healthy",
		"db":  "running",
	}}
	prev := Snapshot{"web": StatusHealthy, "db": StatusRunning}

	batch, next := Cycle(context.Background(), []string{"web", "db"}, prev, prober, time.Second, zap.NewNop())

	if len(batch) != 0 {
		t.Errorf("batch = %+v, want empty", batch)
	}
	if !reflect.DeepEqual(next, prev) {
		t.Errorf("snapshot = %v, want unchanged %v", next, prev)
	}
}

func TestCycle_SnapshotDropsRemovedContainers(t *testing.T) {
	// Containers no longer configured do not survive into the next snapshot.
	prober := &fakeProber{statuses: map[string]string{"web": "healthy"}}
	prev := Snapshot{"web": StatusHealthy, "retired": StatusExited}

	_, next := Cycle(context.Background(), []string{"web"}, prev, prober, time.Second, zap.NewNop())

	if _, ok := next["retired"]; ok {
		t.Errorf("snapshot = %v, want retired container dropped", next)
	}
	if len(next) != 1 {
		t.Errorf("snapshot has %d entries, want 1", len(next))
	}
}

func TestCycle_BatchOrderFollowsConfig(t *testing.T) {
	prober := &fakeProber{statuses: map[string]string{
		"x": "exited",
		"y": "unhealthy",
	}}

	batch, _ := Cycle(context.Background(), []string{"x", "y"}, Snapshot{}, prober, time.Second, zap.NewNop())

	if len(batch) != 2 || batch[0].Container != "x" || batch[1].Container != "y" {
		t.Errorf("batch = %+v, want x before y", batch)
	}
	if !batch[0].At.Equal(batch[1].At) {
		t.Errorf("transitions of one cycle carry different timestamps: %v vs %v", batch[0].At, batch[1].At)
	}
}
