package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/Ascendant_Go/internal/logger"
)

// ErrPoolStopped is returned when a job is enqueued after Stop
var ErrPoolStopped = errors.New(ErrMsgPoolStopped)

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a function to Job
type JobFunc func(ctx context.Context) error

// Process calls f
func (f JobFunc) Process(ctx context.Context) error {
	return f(ctx)
}

type namedJob struct {
	name string
	fn   JobFunc
}

func (j namedJob) Process(ctx context.Context) error {
	return j.fn(ctx)
}

// NewJob wraps fn in a Job whose name shows up in failure logs
func NewJob(name string, fn func(ctx context.Context) error) Job {
	return namedJob{name: name, fn: fn}
}

func jobName(job Job) string {
	if n, ok := job.(namedJob); ok {
		return n.name
	}
	return fmt.Sprintf("%T", job)
}

// Pool represents a worker pool. Jobs still queued when Stop is called are drained.
type Pool struct {
	workers    int
	jobQueue   chan Job
	jobTimeout time.Duration
	wg         sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
}

// NewPool creates a new worker pool
func NewPool(workers int, queueSize int) *Pool {
	return &Pool{
		workers:    max(workers, 1),
		jobQueue:   make(chan Job, max(queueSize, 0)),
		jobTimeout: DefaultJobTimeout,
	}
}

// SetJobTimeout changes the per-job deadline. Call before Start.
func (p *Pool) SetJobTimeout(d time.Duration) {
	p.jobTimeout = d
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for job := range p.jobQueue {
		p.run(job)
	}
}

func (p *Pool) run(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), p.jobTimeout)
	defer cancel()
	log := logger.FromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			log.Error(LogMsgWorkerJobPanicked, "job", jobName(job), "panic", r)
		}
	}()

	if err := job.Process(ctx); err != nil {
		log.Error(LogMsgWorkerJobFailed, "job", jobName(job), "error", err)
	}
}

// Enqueue adds a job to the queue, blocking while the queue is full.
// It returns ErrPoolStopped once Stop has been called.
func (p *Pool) Enqueue(job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		logger.FromContext(context.Background()).Warn(LogMsgEnqueueRejected, "job", jobName(job))
		return ErrPoolStopped
	}
	p.jobQueue <- job
	return nil
}

// TryEnqueue adds a job without blocking. It reports false when the queue is full or stopped.
func (p *Pool) TryEnqueue(job Job) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false
	}
}

// Stop closes the queue, lets the workers finish what is queued and waits for them
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobQueue)
	p.mu.Unlock()

	p.wg.Wait()
	logger.FromContext(context.Background()).Info(LogMsgPoolStopped)
}
