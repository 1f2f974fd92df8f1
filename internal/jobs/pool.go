// Package jobs runs code reviews on a bounded pool of workers so a burst of
// requests queues up instead of hitting the completion model all at once.
package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/sevigo/wizpro/internal/core"
)

const DefaultQueueSize = 100

var (
	// ErrQueueFull is returned when every worker is busy and the queue has no room.
	ErrQueueFull = errors.New("review queue is full")
	// ErrStopped is returned for reviews submitted after Stop.
	ErrStopped = errors.New("review pool is stopped")
)

type job struct {
	ctx    context.Context
	code   string
	lang   core.Language
	result chan result
}

type result struct {
	review string
	err    error
}

// Pool implements core.Reviewer by handing each review to one of maxWorkers
// goroutines that call the wrapped reviewer.
type Pool struct {
	reviewer   core.Reviewer
	queue      chan *job
	maxWorkers int
	wg         sync.WaitGroup
	logger     *slog.Logger

	mu      sync.RWMutex
	stopped bool
}

var _ core.Reviewer = (*Pool)(nil)

// NewPool starts the workers. If maxWorkers is 0 or negative, it defaults to 1;
// a non-positive queueSize uses DefaultQueueSize.
func NewPool(reviewer core.Reviewer, maxWorkers, queueSize int, logger *slog.Logger) *Pool {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	p := &Pool{
		reviewer:   reviewer,
		maxWorkers: maxWorkers,
		queue:      make(chan *job, queueSize),
		logger:     logger,
	}
	for i := range p.maxWorkers {
		p.wg.Add(1)
		go p.startWorker(i)
	}
	return p
}

func (p *Pool) startWorker(workerID int) {
	defer p.wg.Done()
	p.logger.Debug("starting review worker", "id", workerID)

	for j := range p.queue {
		p.process(workerID, j)
	}

	p.logger.Debug("shutting down review worker", "id", workerID)
}

func (p *Pool) process(workerID int, j *job) {
	// The caller may have gone away while the job was queued.
	if err := j.ctx.Err(); err != nil {
		j.result <- result{err: err}
		return
	}

	p.logger.Debug("worker processing review", "worker_id", workerID, "language", j.lang)
	review, err := p.reviewer.Review(j.ctx, j.code, j.lang)
	if err != nil {
		p.logger.Error("review job failed", "worker_id", workerID, "language", j.lang, "error", err)
	}
	j.result <- result{review: review, err: err}
}

// Review queues the code and waits for a worker to review it. It fails fast
// with ErrQueueFull rather than blocking on a full queue.
func (p *Pool) Review(ctx context.Context, code string, lang core.Language) (string, error) {
	j := &job{ctx: ctx, code: code, lang: lang, result: make(chan result, 1)}

	p.mu.RLock()
	if p.stopped {
		p.mu.RUnlock()
		return "", ErrStopped
	}
	select {
	case p.queue <- j:
	default:
		p.mu.RUnlock()
		p.logger.Warn("rejecting review, queue is full", "capacity", cap(p.queue))
		return "", ErrQueueFull
	}
	p.mu.RUnlock()

	select {
	case r := <-j.result:
		return r.review, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Stop rejects new reviews and waits for the queued ones to finish.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.queue)
	p.mu.Unlock()

	p.logger.Info("stopping review pool and waiting for jobs to finish")
	p.wg.Wait()
	p.logger.Info("all review jobs have finished")
}
