package observability

import (
	"context"
	"testing"
	"time"
)

type recordingHooks struct {
	starts     int
	iterations int
	completes  int
	lastErr    error
}

func (r *recordingHooks) OnResolveStart(_ context.Context, _ string, _ int) { r.starts++ }
func (r *recordingHooks) OnIteration(_ context.Context, _, _ int, _ float64) {
	r.iterations++
}
func (r *recordingHooks) OnResolveComplete(_ context.Context, _ string, _ time.Duration, err error) {
	r.completes++
	r.lastErr = err
}

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()

	h := Engine()
	if _, ok := h.(NoopEngineHooks); !ok {
		t.Fatalf("default hooks = %T, want NoopEngineHooks", h)
	}

	// No-ops must be safe to call with zero values.
	ctx := context.Background()
	h.OnResolveStart(ctx, "", 0)
	h.OnIteration(ctx, 0, 0, 0)
	h.OnResolveComplete(ctx, "", 0, nil)
}

func TestSetEngineHooks(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingHooks{}
	SetEngineHooks(rec)

	ctx := context.Background()
	Engine().OnResolveStart(ctx, "flowchart", 3)
	Engine().OnIteration(ctx, 1, 2, 87.5)
	Engine().OnResolveComplete(ctx, "flowchart", time.Millisecond, nil)

	if rec.starts != 1 || rec.iterations != 1 || rec.completes != 1 {
		t.Errorf("recorded %d/%d/%d events, want 1/1/1", rec.starts, rec.iterations, rec.completes)
	}
}

func TestSetEngineHooksIgnoresNil(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingHooks{}
	SetEngineHooks(rec)
	SetEngineHooks(nil)

	if Engine() != rec {
		t.Error("nil registration should keep the previous hooks")
	}
}

func TestReset(t *testing.T) {
	SetEngineHooks(&recordingHooks{})
	Reset()

	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Errorf("after Reset hooks = %T, want NoopEngineHooks", Engine())
	}
}
