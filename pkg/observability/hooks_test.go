package observability

import (
	"context"
	"testing"
	"time"
)

type recordingPipelineHooks struct {
	NoopPipelineHooks
	colorStarts int
}

func (h *recordingPipelineHooks) OnColorStart(ctx context.Context, algorithm string, cells int) {
	h.colorStarts++
}

type recordingCacheHooks struct {
	NoopCacheHooks
	hits int
}

func (h *recordingCacheHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.hits++
}

func TestHookRegistration(t *testing.T) {
	defer Reset()

	ph := &recordingPipelineHooks{}
	SetPipelineHooks(ph)
	Pipeline().OnColorStart(context.Background(), "zones", 100)
	if ph.colorStarts != 1 {
		t.Errorf("colorStarts = %d, want 1", ph.colorStarts)
	}

	ch := &recordingCacheHooks{}
	SetCacheHooks(ch)
	Cache().OnCacheHit(context.Background(), "coloring")
	if ch.hits != 1 {
		t.Errorf("hits = %d, want 1", ch.hits)
	}
}

func TestSetNilKeepsCurrent(t *testing.T) {
	defer Reset()

	ph := &recordingPipelineHooks{}
	SetPipelineHooks(ph)
	SetPipelineHooks(nil)
	Pipeline().OnColorStart(context.Background(), "greedy", 1)
	if ph.colorStarts != 1 {
		t.Error("nil registration replaced existing hooks")
	}
}

func TestReset(t *testing.T) {
	ph := &recordingPipelineHooks{}
	SetPipelineHooks(ph)
	Reset()
	Pipeline().OnColorComplete(context.Background(), "zones", 4, time.Millisecond, nil)
	if ph.colorStarts != 0 {
		t.Error("Reset() did not restore no-op hooks")
	}
}
