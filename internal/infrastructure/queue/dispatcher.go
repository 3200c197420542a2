// Package queue runs background recommendation generation.
package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/observability/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Generator is the work each job performs.
type Generator interface {
	Generate(ctx context.Context, userID int64) ([]*domain.Recommendation, error)
}

// Dispatcher routes generation jobs to a fixed set of workers using
// consistent hashing on the user id, so one user's jobs run in order.
type Dispatcher struct {
	workers   []chan int64
	generator Generator
	log       zerolog.Logger
	wg        sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, generator Generator, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan int64, numWorkers),
		generator: generator,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan int64, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands a user to its worker without blocking. When that worker's
// buffer is full, or the workers have stopped and it filled up, the job is
// dropped and counted.
func (d *Dispatcher) Enqueue(userID int64) {
	idx := d.shardIndex(userID)
	select {
	case d.workers[idx] <- userID:
	default:
		metrics.RecommendationsDroppedTotal.Inc()
		d.log.Warn().Int64("user_id", userID).Int("worker_id", idx).Msg("recommendation queue full, job dropped")
		return
	}
	metrics.RecommendationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID int64) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatInt(userID, 10)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan int64) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case userID := <-ch:
			metrics.RecommendationQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

			start := time.Now()
			result := "ok"
			if _, err := d.generator.Generate(ctx, userID); err != nil {
				result = "error"
				d.log.Error().Err(err).
					Int64("user_id", userID).
					Int("worker_id", id).
					Msg("recommendation generation failed")
			}
			metrics.RecommendationJobDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
		}
	}
}

// Inline runs generation on the caller's goroutine. Tests and tools use it
// where background work would race the assertions.
type Inline struct {
	Generator Generator
	Log       zerolog.Logger
}

func (q Inline) Enqueue(userID int64) {
	if _, err := q.Generator.Generate(context.Background(), userID); err != nil {
		q.Log.Error().Err(err).Int64("user_id", userID).Msg("recommendation generation failed")
	}
}
