package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/Bastianbone18/trasera/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueEmail = "jobs:email"

	JobOrdenConfirmada = "orden_confirmada"

	// MaxAttempts is how many times a job runs before it is moved to the DLQ.
	MaxAttempts = 3
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// OrdenConfirmadaPayload asks for the confirmation mail of one order.
type OrdenConfirmadaPayload struct {
	OrdenID string `json:"orden_id"`
}

// Handler processes one job payload. A returned error schedules a retry.
type Handler interface {
	Process(ctx context.Context, payload json.RawMessage) error
}

// WorkerHandlers routes job types to their handler.
type WorkerHandlers struct {
	Email Handler
}

func (h *WorkerHandlers) forType(jobType string) Handler {
	switch jobType {
	case JobOrdenConfirmada:
		return h.Email
	}
	return nil
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// NotificarOrden queues the confirmation mail of o.
func (d *Dispatcher) NotificarOrden(ctx context.Context, o *model.Orden) error {
	return d.enqueue(ctx, QueueEmail, JobOrdenConfirmada, OrdenConfirmadaPayload{OrdenID: o.ID.String()})
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return push(ctx, d.rdb, queue, Job{Type: jobType, Payload: data})
}

func push(ctx context.Context, rdb *redis.Client, queue string, job Job) error {
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return rdb.LPush(ctx, queue, encoded).Err()
}

// StartWorkerPool launches numWorkers goroutines consuming the job queues.
// Each goroutine blocks on BRPOP; cancel ctx and Wait on the result to stop them.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, numWorkers int) *sync.WaitGroup {
	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			runWorker(ctx, rdb, handlers, id)
		}(i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
	return &wg
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, id int) {
	for {
		if ctx.Err() != nil {
			log.Info().Msgf("worker %d shutting down", id)
			return
		}
		// Blocking pop: waits up to 5s then loops to check ctx
		result, err := rdb.BRPop(ctx, 5*time.Second, QueueEmail).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
				log.Error().Err(err).Int("worker", id).Msg("brpop failed")
				time.Sleep(time.Second)
			}
			continue
		}
		if len(result) < 2 {
			continue
		}
		processJob(ctx, rdb, handlers, result[0], result[1])
	}
}

// processJob runs one raw job; failures are re-queued until MaxAttempts and
// then moved to the dead letter queue.
func processJob(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		// Keep the broken envelope as a JSON string so the entry stays encodable.
		quoted, _ := json.Marshal(raw)
		park(ctx, rdb, queue, "unknown", quoted, "invalid envelope: "+err.Error(), 0)
		return
	}

	h := handlers.forType(job.Type)
	if h == nil {
		park(ctx, rdb, queue, job.Type, job.Payload, "no handler for job type", job.Attempts)
		return
	}

	err := h.Process(ctx, job.Payload)
	if err == nil {
		return
	}

	job.Attempts++
	logger := log.Warn().Err(err).Str("type", job.Type).Int("attempts", job.Attempts)
	if job.Attempts >= MaxAttempts {
		logger.Msg("job failed, giving up")
		park(ctx, rdb, queue, job.Type, job.Payload, err.Error(), job.Attempts)
		return
	}
	logger.Msg("job failed, retrying")
	if pushErr := push(ctx, rdb, queue, job); pushErr != nil {
		log.Error().Err(pushErr).Str("queue", queue).Msg("failed to re-enqueue job")
	}
}

func park(ctx context.Context, rdb *redis.Client, queue, jobType string, payload json.RawMessage, reason string, attempts int) {
	if err := SendToDLQ(ctx, rdb, queue, jobType, payload, reason, attempts); err != nil {
		log.Error().Err(err).Str("queue", queue).Str("type", jobType).Msg("job lost")
	}
}
