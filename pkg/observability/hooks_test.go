package observability

import (
	"context"
	"testing"
	"time"
)

type recordingJobHooks struct {
	layoutStarts  int
	renderStarts  int
	renderDone    int
	lastTokenSeen int
}

func (h *recordingJobHooks) OnLayoutStart(context.Context, string, string) { h.layoutStarts++ }
func (h *recordingJobHooks) OnLayoutComplete(context.Context, string, int, time.Duration, error) {
}
func (h *recordingJobHooks) OnRenderStart(_ context.Context, _ string, n int) {
	h.renderStarts++
	h.lastTokenSeen = n
}
func (h *recordingJobHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {
	h.renderDone++
}

func TestDefaultsAreNoop(t *testing.T) {
	// The defaults must be callable without registration.
	ctx := context.Background()
	Job().OnLayoutStart(ctx, "job-1", "seal")
	Job().OnRenderComplete(ctx, "job-1", 3, time.Second, nil)
	Cache().OnCacheHit(ctx, "artifact")
	Cache().OnCacheSet(ctx, "artifact", 1024)
}

func TestSetJobHooks(t *testing.T) {
	rec := &recordingJobHooks{}
	SetJobHooks(rec)
	t.Cleanup(func() { SetJobHooks(NoopJobHooks{}) })

	ctx := context.Background()
	Job().OnLayoutStart(ctx, "job-1", "seal")
	Job().OnRenderStart(ctx, "job-1", 12)
	Job().OnRenderComplete(ctx, "job-1", 12, time.Millisecond, nil)

	if rec.layoutStarts != 1 || rec.renderStarts != 1 || rec.renderDone != 1 {
		t.Errorf("hook counts = %+v", rec)
	}
	if rec.lastTokenSeen != 12 {
		t.Errorf("lastTokenSeen = %d, want 12", rec.lastTokenSeen)
	}
}

func TestSetNilKeepsCurrent(t *testing.T) {
	rec := &recordingJobHooks{}
	SetJobHooks(rec)
	t.Cleanup(func() { SetJobHooks(NoopJobHooks{}) })

	SetJobHooks(nil)
	Job().OnRenderStart(context.Background(), "job-2", 1)
	if rec.renderStarts != 1 {
		t.Error("nil registration replaced the current hooks")
	}
}
