// Package worker runs the background render pool. Bills are rendered
// synchronously on request; the pool only warms the redis PDF cache after a
// bill is created so the first download is usually a cache hit. Losing a job
// is harmless: the download path falls back to a synchronous render.
package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const QueueRender = "jobs:render-invoice"

// RenderJob asks a worker to render one bill's PDF into the cache.
// Store names the logical store ("production" or "demo") the bill lives in.
type RenderJob struct {
	BillID uuid.UUID `json:"bill_id"`
	Store  string    `json:"store"`
}

// Renderer is implemented by the billing layer; the pool stays decoupled
// from service wiring.
type Renderer interface {
	RenderToCache(ctx context.Context, store string, billID uuid.UUID) error
}

// Dispatcher enqueues render jobs into a Redis list.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher { return &Dispatcher{rdb: rdb} }

// EnqueueRender pushes a cache-warm job. Best-effort: failures are logged,
// never surfaced to the request.
func (d *Dispatcher) EnqueueRender(ctx context.Context, store string, billID uuid.UUID) {
	if d == nil || d.rdb == nil {
		return
	}
	data, err := json.Marshal(RenderJob{BillID: billID, Store: store})
	if err != nil {
		return
	}
	if err := d.rdb.LPush(ctx, QueueRender, data).Err(); err != nil {
		log.Warn().Err(err).Msg("failed to enqueue render job")
	}
}

// StartPool launches numWorkers goroutines consuming the render queue.
// Each goroutine blocks on BRPOP, zero CPU when idle.
func StartPool(ctx context.Context, rdb *redis.Client, renderer Renderer, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go run(ctx, rdb, renderer, i)
	}
	log.Info().Msgf("render pool started with %d workers", numWorkers)
}

func run(ctx context.Context, rdb *redis.Client, renderer Renderer, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("render worker %d shutting down", id)
			return
		default:
			// Blocking pop, waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueRender).Result()
			if err != nil || len(result) < 2 {
				continue
			}
			var job RenderJob
			if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
				log.Error().Err(err).Msg("failed to unmarshal render job")
				continue
			}
			if err := renderer.RenderToCache(ctx, job.Store, job.BillID); err != nil {
				log.Warn().Err(err).Str("bill_id", job.BillID.String()).Msg("cache warm render failed")
			}
		}
	}
}
