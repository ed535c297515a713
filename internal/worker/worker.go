package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/redis/go-redis/v9"
)

type JobType string

const (
	// JobTypeTokenCleanup purges expired refresh tokens from the store.
	JobTypeTokenCleanup JobType = "token_cleanup"
	// JobTypeCacheFlush drops all cached per-owner task lists. A mutation
	// racing a cached read can leave a stale list until its TTL expires;
	// the periodic flush bounds how long that lasts.
	JobTypeCacheFlush JobType = "cache_flush"
)

type Job struct {
	ID        string                 `json:"id"`
	Type      JobType                `json:"type"`
	Payload   map[string]interface{} `json:"payload"`
	Attempts  int                    `json:"attempts"`
	MaxTries  int                    `json:"max_tries"`
	CreatedAt time.Time              `json:"created_at"`
}

type JobHandler func(ctx context.Context, job *Job) error

type Worker struct {
	client   *redis.Client
	handlers map[JobType]JobHandler
	queues   []string
	mu       sync.RWMutex
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

type WorkerConfig struct {
	RedisClient  *redis.Client
	Queues       []string
	PollInterval time.Duration
}

func NewWorker(config WorkerConfig) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	queues := config.Queues
	if len(queues) == 0 {
		queues = []string{"default"}
	}

	return &Worker{
		client:   config.RedisClient,
		handlers: make(map[JobType]JobHandler),
		queues:   queues,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (w *Worker) RegisterHandler(jobType JobType, handler JobHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers[jobType] = handler
}

// Enqueue pushes a job onto a queue for any running worker to pick up.
func (w *Worker) Enqueue(ctx context.Context, queue string, jobType JobType, payload map[string]interface{}) error {
	job := Job{
		ID:        uuid.Must(uuid.NewV4()).String(),
		Type:      jobType,
		Payload:   payload,
		MaxTries:  3,
		CreatedAt: time.Now(),
	}
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return w.client.RPush(ctx, queue, data).Err()
}

func (w *Worker) Start(concurrency int) {
	log.Printf("starting worker with %d goroutines", concurrency)

	for i := 0; i < concurrency; i++ {
		w.wg.Add(1)
		go w.workerLoop()
	}
}

func (w *Worker) Stop() {
	log.Println("stopping worker...")
	w.cancel()
	w.wg.Wait()
	log.Println("worker stopped")
}

func (w *Worker) workerLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		default:
			if err := w.processNextJob(); err != nil {
				log.Printf("error processing job: %v", err)
				time.Sleep(time.Second)
			}
		}
	}
}

func (w *Worker) processNextJob() error {
	result, err := w.client.BLPop(w.ctx, 5*time.Second, w.queues...).Result()
	if err != nil {
		if err == redis.Nil || w.ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to pop job: %w", err)
	}

	if len(result) < 2 {
		return fmt.Errorf("invalid job result")
	}

	queue := result[0]
	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		return fmt.Errorf("failed to unmarshal job: %w", err)
	}

	w.mu.RLock()
	handler, exists := w.handlers[job.Type]
	w.mu.RUnlock()
	if !exists {
		return fmt.Errorf("no handler registered for job type %s", job.Type)
	}

	if err := handler(w.ctx, &job); err != nil {
		job.Attempts++
		if job.Attempts < job.MaxTries {
			data, marshalErr := json.Marshal(job)
			if marshalErr != nil {
				return marshalErr
			}
			if pushErr := w.client.RPush(w.ctx, queue, data).Err(); pushErr != nil {
				return pushErr
			}
			return nil
		}
		return fmt.Errorf("job %s failed after %d attempts: %w", job.ID, job.Attempts, err)
	}

	return nil
}
