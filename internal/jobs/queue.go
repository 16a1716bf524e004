// Package jobs holds the FIFO render queue. A single worker goroutine drains
// the queue head by head; Enqueue is the only entry point callable from
// multiple goroutines.
package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"reelsmith/pkg/log"
)

// Executor processes one job end to end.
type Executor func(ctx context.Context, job *RenderJob) error

// ArtifactChecker reports whether a job's output artifact exists.
type ArtifactChecker func(jobID string) bool

type Queue struct {
	exec     Executor
	artifact ArtifactChecker

	mu      sync.Mutex
	items   []*RenderJob
	running bool
	wg      sync.WaitGroup
}

func NewQueue(exec Executor, artifact ArtifactChecker) *Queue {
	return &Queue{
		exec:     exec,
		artifact: artifact,
	}
}

// Enqueue appends a job to the queue tail and returns immediately. When the
// worker is idle it is started; the append-and-maybe-start transition happens
// under one lock so concurrent callers can never start two workers.
func (q *Queue) Enqueue(scenes []Scene, cfg RenderConfig) *RenderJob {
	job := &RenderJob{
		ID:        uuid.NewString(),
		Scenes:    scenes,
		Config:    cfg,
		CreatedAt: time.Now(),
	}

	q.mu.Lock()
	q.items = append(q.items, job)
	start := !q.running
	if start {
		q.running = true
	}
	q.mu.Unlock()

	if start {
		q.wg.Add(1)
		go q.drain()
	}

	log.Info("Enqueued job %s with %d scenes", job.ID, len(scenes))
	return cloneJob(job)
}

// Status derives a job's state: processing while it sits in the queue, ready
// once the renderer's artifact exists, failed otherwise.
func (q *Queue) Status(jobID string) Status {
	q.mu.Lock()
	for _, job := range q.items {
		if job.ID == jobID {
			q.mu.Unlock()
			return StatusProcessing
		}
	}
	q.mu.Unlock()

	if q.artifact != nil && q.artifact(jobID) {
		return StatusReady
	}
	return StatusFailed
}

// List returns a snapshot of the queued jobs, head first.
func (q *Queue) List() []*RenderJob {
	q.mu.Lock()
	defer q.mu.Unlock()

	ret := make([]*RenderJob, 0, len(q.items))
	for _, job := range q.items {
		ret = append(ret, cloneJob(job))
	}
	return ret
}

// Wait blocks until the worker goes idle. Test and shutdown helper.
func (q *Queue) Wait() {
	q.wg.Wait()
}

// drain processes the queue head until the queue is empty, then exits. A
// failed job is popped like a successful one and never blocks the next.
func (q *Queue) drain() {
	defer q.wg.Done()

	for {
		q.mu.Lock()
		if len(q.items) == 0 {
			q.running = false
			q.mu.Unlock()
			return
		}
		job := q.items[0]
		q.mu.Unlock()

		if err := q.process(job); err != nil {
			log.Error("Job %s failed: %v", job.ID, err)
		} else {
			log.Info("Job %s completed", job.ID)
		}

		q.mu.Lock()
		q.items = q.items[1:]
		q.mu.Unlock()
	}
}

// process runs the executor, converting panics into job failures so one bad
// job cannot take the worker down.
func (q *Queue) process(job *RenderJob) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return q.exec(context.Background(), job)
}

func cloneJob(job *RenderJob) *RenderJob {
	if job == nil {
		return nil
	}
	tmp := *job
	return &tmp
}
