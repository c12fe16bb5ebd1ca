package export

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Orchestrator runs export jobs on a bounded worker pool. Export is
// fire-and-forget for the editing session: submission returns immediately
// and callers poll job state for the artifact.
type Orchestrator struct {
	jobs     *JobStore
	queue    chan *Job
	exporter *Exporter
	log      *slog.Logger

	workers   int
	queueSize int

	mu     sync.Mutex
	closed bool
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline; Start launches its workers.
func NewOrchestrator(exporter *Exporter, workers, queueSize int, jobTTL time.Duration, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:      NewJobStore(jobTTL),
		queue:     make(chan *Job, queueSize),
		exporter:  exporter,
		log:       log,
		workers:   workers,
		queueSize: queueSize,
	}
}

// Start launches worker goroutines and the job-store janitor.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.workers {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					o.render(workerCtx, job)
				}
			}
		}()
	}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline. Submissions arriving after
// Stop are rejected rather than sent on the closed queue.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	o.mu.Lock()
	if !o.closed {
		o.closed = true
		close(o.queue)
	}
	o.mu.Unlock()
	o.wg.Wait()
}

func (o *Orchestrator) render(ctx context.Context, job *Job) {
	job.SetStatus(StatusRendering)
	doc, opts := job.Input()

	start := time.Now()
	artifact, err := o.exporter.Export(ctx, doc, opts)
	if err != nil {
		// Single failure signal; the pipeline never retries a render.
		job.Fail(err)
		o.log.Error("export failed", "job_id", job.ID, "error", err)
		return
	}
	job.Complete(artifact)
	o.log.Info("export completed",
		"job_id", job.ID,
		"bytes", len(artifact),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

// Submit queues a new export job.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		err := fmt.Errorf("export pipeline is shut down")
		job.Fail(err)
		return err
	}
	select {
	case o.queue <- job:
		return nil
	default:
		job.Fail(fmt.Errorf("export queue is full (%d)", o.queueSize))
		return fmt.Errorf("export queue is full (%d)", o.queueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}
