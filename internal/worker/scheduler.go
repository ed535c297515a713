package worker

import (
	"context"
	"log"
	"time"
)

// Scheduler enqueues recurring maintenance jobs at fixed intervals.
type Scheduler struct {
	worker *Worker
	queue  string
	cancel context.CancelFunc
}

type ScheduledJob struct {
	Type     JobType
	Interval time.Duration
}

func NewScheduler(w *Worker, queue string) *Scheduler {
	return &Scheduler{worker: w, queue: queue}
}

func (s *Scheduler) Start(jobs []ScheduledJob) {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	for _, job := range jobs {
		go func(job ScheduledJob) {
			ticker := time.NewTicker(job.Interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if err := s.worker.Enqueue(ctx, s.queue, job.Type, nil); err != nil {
						log.Printf("failed to enqueue %s: %v", job.Type, err)
					}
				}
			}
		}(job)
	}
}

func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}
