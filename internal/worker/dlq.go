package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// DLQPrefix namespaces the dead letter list of each queue: dlq:<queue>.
const DLQPrefix = "dlq:"

// DLQEntry is a job that will not be retried, kept for manual inspection.
type DLQEntry struct {
	OriginalQueue string          `json:"original_queue"`
	JobType       string          `json:"job_type"`
	Payload       json.RawMessage `json:"payload"`
	Reason        string          `json:"reason"`
	FailedAt      time.Time       `json:"failed_at"`
	Attempts      int             `json:"attempts"`
}

func dlqKey(queue string) string { return DLQPrefix + queue }

// SendToDLQ parks a failed job. The newest entry is at the head of the list.
func SendToDLQ(ctx context.Context, rdb *redis.Client, queue string, jobType string, payload json.RawMessage, reason string, attempts int) error {
	data, err := json.Marshal(DLQEntry{
		OriginalQueue: queue,
		JobType:       jobType,
		Payload:       payload,
		Reason:        reason,
		FailedAt:      time.Now().UTC(),
		Attempts:      attempts,
	})
	if err != nil {
		return fmt.Errorf("dlq: encode entry: %w", err)
	}
	if err := rdb.LPush(ctx, dlqKey(queue), data).Err(); err != nil {
		return fmt.Errorf("dlq: push %s: %w", dlqKey(queue), err)
	}

	log.Warn().
		Str("queue", queue).
		Str("job_type", jobType).
		Str("reason", reason).
		Int("attempts", attempts).
		Msg("job parked in dead letter queue")
	return nil
}

// DLQLength returns the number of parked jobs of queue.
func DLQLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, dlqKey(queue)).Result()
}

// DLQPeek returns up to n of the most recently parked jobs, newest first,
// without removing them. Entries that do not decode are skipped.
func DLQPeek(ctx context.Context, rdb *redis.Client, queue string, n int64) ([]DLQEntry, error) {
	if n <= 0 {
		return nil, nil
	}
	raws, err := rdb.LRange(ctx, dlqKey(queue), 0, n-1).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]DLQEntry, 0, len(raws))
	for _, raw := range raws {
		var e DLQEntry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}
