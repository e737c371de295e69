package service

import (
	"context"
	"log/slog"
	"sync"
)

// Task is a unit of background work.
type Task func(ctx context.Context)

// Runner executes tasks on a fixed pool of workers with a bounded queue.
// Submit never blocks the caller: when the queue is full the task is
// dropped and a warning logged.
type Runner struct {
	queue   chan Task
	logger  *slog.Logger
	wg      sync.WaitGroup
	closeMu sync.Mutex
	closed  bool
}

// NewRunner creates a runner with the given worker count and queue depth.
func NewRunner(workers, queueDepth int, logger *slog.Logger) *Runner {
	if workers <= 0 {
		workers = 2
	}
	if queueDepth <= 0 {
		queueDepth = 16
	}
	if logger == nil {
		logger = slog.Default()
	}

	r := &Runner{
		queue:  make(chan Task, queueDepth),
		logger: logger,
	}

	r.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go r.worker()
	}
	return r
}

func (r *Runner) worker() {
	defer r.wg.Done()
	for task := range r.queue {
		r.run(task)
	}
}

func (r *Runner) run(task Task) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("background task panicked", "panic", rec)
		}
	}()
	task(context.Background())
}

// Submit enqueues a task. Returns false when the runner is closed or the
// queue is full.
func (r *Runner) Submit(name string, task Task) bool {
	r.closeMu.Lock()
	defer r.closeMu.Unlock()

	if r.closed {
		r.logger.Warn("task dropped, runner closed", "task", name)
		return false
	}

	select {
	case r.queue <- task:
		return true
	default:
		r.logger.Warn("task dropped, queue full", "task", name)
		return false
	}
}

// Close stops accepting tasks and waits for in-flight tasks to finish.
func (r *Runner) Close() {
	r.closeMu.Lock()
	if r.closed {
		r.closeMu.Unlock()
		return
	}
	r.closed = true
	close(r.queue)
	r.closeMu.Unlock()

	r.wg.Wait()
}
