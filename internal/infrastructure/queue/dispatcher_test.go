package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"

	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/observability/metrics"
)

func droppedJobs(t *testing.T) float64 {
	t.Helper()
	var m dto.Metric
	if err := metrics.RecommendationsDroppedTotal.Write(&m); err != nil {
		t.Fatalf("read counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

type recordingGenerator struct {
	mu    sync.Mutex
	calls []int64
	done  chan struct{}
}

func (g *recordingGenerator) Generate(_ context.Context, userID int64) ([]*domain.Recommendation, error) {
	g.mu.Lock()
	g.calls = append(g.calls, userID)
	n := len(g.calls)
	g.mu.Unlock()
	if n == cap(g.done) {
		close(g.done)
	}
	return nil, nil
}

func TestDispatcher_ProcessesEveryJob(t *testing.T) {
	gen := &recordingGenerator{done: make(chan struct{}, 5)}
	d := NewDispatcher(2, gen, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	for id := int64(1); id <= 5; id++ {
		d.Enqueue(id)
	}

	select {
	case <-gen.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for jobs")
	}

	cancel()
	d.Wait()

	gen.mu.Lock()
	defer gen.mu.Unlock()
	if len(gen.calls) != 5 {
		t.Fatalf("expected 5 jobs, got %d", len(gen.calls))
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(8, &recordingGenerator{}, zerolog.Nop())
	for id := int64(1); id < 50; id++ {
		first := d.shardIndex(id)
		if first < 0 || first >= 8 {
			t.Fatalf("index out of range: %d", first)
		}
		if again := d.shardIndex(id); again != first {
			t.Fatalf("unstable shard for %d: %d vs %d", id, first, again)
		}
	}
}

func TestInline_RunsSynchronously(t *testing.T) {
	gen := &recordingGenerator{done: make(chan struct{}, 1)}
	Inline{Generator: gen, Log: zerolog.Nop()}.Enqueue(42)

	if len(gen.calls) != 1 || gen.calls[0] != 42 {
		t.Fatalf("unexpected calls: %v", gen.calls)
	}
}

func TestDispatcher_EnqueueDropsWhenWorkersStopped(t *testing.T) {
	d := NewDispatcher(1, &recordingGenerator{}, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	cancel()
	d.Wait()

	before := droppedJobs(t)
	const jobs = channelBuffer + 44

	done := make(chan struct{})
	go func() {
		for id := int64(1); id <= jobs; id++ {
			d.Enqueue(id)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Enqueue blocked with the workers stopped")
	}

	if got := droppedJobs(t) - before; got != jobs-channelBuffer {
		t.Fatalf("expected %d dropped jobs, got %v", jobs-channelBuffer, got)
	}
}
