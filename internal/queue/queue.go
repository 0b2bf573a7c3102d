// Package queue runs analysis requests asynchronously on a fixed worker
// pool. Callers get a task ID back immediately and poll its status; the
// registry keeps finished tasks around for a retention window so late
// polls still find their result.
package queue

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"assurdoc/internal/domain"
)

// TaskStatus is the lifecycle state of a queued analysis.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusProcessing TaskStatus = "processing"
	StatusDone       TaskStatus = "done"
	StatusError      TaskStatus = "error"
)

var ErrQueueFull = errors.New("analysis queue is full")

// Task is one queued analysis request and its outcome.
type Task struct {
	ID         string                  `json:"id"`
	DemandeID  string                  `json:"demande_id"`
	Status     TaskStatus              `json:"status"`
	Docs       []domain.RawDocument    `json:"-"`
	Result     *domain.DemandeAnalysis `json:"result,omitempty"`
	Error      string                  `json:"error,omitempty"`
	EnqueuedAt time.Time               `json:"enqueued_at"`
	StartedAt  time.Time               `json:"started_at,omitempty"`
	FinishedAt time.Time               `json:"finished_at,omitempty"`
}

// Handler runs one analysis. It is called from worker goroutines and must
// be safe for concurrent use.
type Handler func(ctx context.Context, demandeID string, docs []domain.RawDocument) (*domain.DemandeAnalysis, error)

// Config holds the worker pool settings.
type Config struct {
	Workers       int
	Capacity      int
	TaskTimeout   time.Duration
	RetentionTTL  time.Duration
	SweepInterval time.Duration
}

// Queue is the bounded FIFO task queue. One mutex guards the registry;
// the channel itself provides the FIFO ordering and the bound.
type Queue struct {
	cfg     Config
	handler Handler

	mu    sync.Mutex
	tasks map[string]*Task

	ch chan string
	wg sync.WaitGroup
}

// New creates a queue. Zero config values get safe defaults.
func New(cfg Config, handler Handler) *Queue {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = 100
	}
	if cfg.TaskTimeout <= 0 {
		cfg.TaskTimeout = 5 * time.Minute
	}
	if cfg.RetentionTTL <= 0 {
		cfg.RetentionTTL = time.Hour
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	return &Queue{
		cfg:     cfg,
		handler: handler,
		tasks:   make(map[string]*Task),
		ch:      make(chan string, cfg.Capacity),
	}
}

// Start runs the worker pool and the retention sweeper until ctx is
// canceled, then blocks until in-flight tasks have finished.
func (q *Queue) Start(ctx context.Context) {
	log.Printf("queue.Queue: started (workers=%d, capacity=%d, retention=%s)",
		q.cfg.Workers, q.cfg.Capacity, q.cfg.RetentionTTL)

	for i := 0; i < q.cfg.Workers; i++ {
		q.wg.Add(1)
		go q.worker(ctx, i)
	}
	q.wg.Add(1)
	go q.sweeper(ctx)

	<-ctx.Done()
	log.Printf("queue.Queue: shutting down, waiting for in-flight tasks...")
	q.wg.Wait()
	log.Printf("queue.Queue: shutdown complete")
}

// Enqueue registers a task and queues it. It never blocks: a full queue is
// reported as ErrQueueFull and nothing is registered.
func (q *Queue) Enqueue(demandeID string, docs []domain.RawDocument) (string, error) {
	t := &Task{
		ID:         uuid.NewString(),
		DemandeID:  demandeID,
		Status:     StatusPending,
		Docs:       docs,
		EnqueuedAt: time.Now().UTC(),
	}

	q.mu.Lock()
	q.tasks[t.ID] = t
	q.mu.Unlock()

	select {
	case q.ch <- t.ID:
		return t.ID, nil
	default:
		q.mu.Lock()
		delete(q.tasks, t.ID)
		q.mu.Unlock()
		return "", ErrQueueFull
	}
}

// Status returns a snapshot of a task. The copy is detached: mutating it
// has no effect on the registry.
func (q *Queue) Status(taskID string) (Task, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	t, ok := q.tasks[taskID]
	if !ok {
		return Task{}, domain.ErrTaskNotFound
	}
	return *t, nil
}

func (q *Queue) worker(ctx context.Context, n int) {
	defer q.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case id := <-q.ch:
			q.process(id, n)
		}
	}
}

func (q *Queue) process(id string, worker int) {
	q.mu.Lock()
	t, ok := q.tasks[id]
	if !ok {
		q.mu.Unlock()
		return
	}
	t.Status = StatusProcessing
	t.StartedAt = time.Now().UTC()
	demandeID, docs := t.DemandeID, t.Docs
	q.mu.Unlock()

	// Fresh context so an in-flight analysis completes even while the
	// pool is shutting down.
	taskCtx, cancel := context.WithTimeout(context.Background(), q.cfg.TaskTimeout)
	defer cancel()

	log.Printf("queue.Queue: worker %d processing task %s (demande %s)", worker, id, demandeID)
	result, err := q.handler(taskCtx, demandeID, docs)

	q.mu.Lock()
	defer q.mu.Unlock()
	t.FinishedAt = time.Now().UTC()
	t.Docs = nil
	if err != nil {
		t.Status = StatusError
		t.Error = err.Error()
		log.Printf("queue.Queue: task %s failed: %v", id, err)
		return
	}
	t.Status = StatusDone
	t.Result = result
}

// sweeper drops finished tasks older than the retention TTL.
func (q *Queue) sweeper(ctx context.Context) {
	defer q.wg.Done()
	ticker := time.NewTicker(q.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			q.sweep(time.Now().UTC())
		}
	}
}

func (q *Queue) sweep(now time.Time) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for id, t := range q.tasks {
		if t.Status != StatusDone && t.Status != StatusError {
			continue
		}
		if now.Sub(t.FinishedAt) > q.cfg.RetentionTTL {
			delete(q.tasks, id)
		}
	}
}
