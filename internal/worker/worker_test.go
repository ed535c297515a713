package worker

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupTestWorker(t *testing.T) *Worker {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewWorker(WorkerConfig{
		RedisClient: client,
		Queues:      []string{"default"},
	})
}

func TestEnqueueAndProcess(t *testing.T) {
	w := setupTestWorker(t)

	processed := make(chan *Job, 1)
	w.RegisterHandler(JobTypeTokenCleanup, func(ctx context.Context, job *Job) error {
		processed <- job
		return nil
	})

	err := w.Enqueue(context.Background(), "default", JobTypeTokenCleanup, map[string]interface{}{"reason": "test"})
	if err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	w.Start(1)
	defer w.Stop()

	select {
	case job := <-processed:
		if job.Type != JobTypeTokenCleanup {
			t.Errorf("Expected job type %s, got %s", JobTypeTokenCleanup, job.Type)
		}
		if job.Payload["reason"] != "test" {
			t.Errorf("Payload not preserved: %+v", job.Payload)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Job was not processed in time")
	}
}

func TestFailedJobIsRetried(t *testing.T) {
	w := setupTestWorker(t)

	attempts := make(chan int, 3)
	w.RegisterHandler(JobTypeCacheFlush, func(ctx context.Context, job *Job) error {
		attempts <- job.Attempts
		if job.Attempts == 0 {
			return context.DeadlineExceeded
		}
		return nil
	})

	if err := w.Enqueue(context.Background(), "default", JobTypeCacheFlush, nil); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	w.Start(1)
	defer w.Stop()

	deadline := time.After(3 * time.Second)
	for i := 0; i < 2; i++ {
		select {
		case attempt := <-attempts:
			if attempt != i {
				t.Errorf("Expected attempt %d, got %d", i, attempt)
			}
		case <-deadline:
			t.Fatal("Retry did not happen in time")
		}
	}
}

func TestUnknownJobType(t *testing.T) {
	w := setupTestWorker(t)

	if err := w.Enqueue(context.Background(), "default", JobType("nonsense"), nil); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	if err := w.processNextJob(); err == nil {
		t.Error("Expected an error for unregistered job type")
	}
}
