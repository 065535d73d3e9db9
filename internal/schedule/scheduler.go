package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/bowerhall/brandchat/internal/logger"
	"github.com/google/uuid"
)

type task struct {
	ID        string
	Label     string
	CreatedAt time.Time
	timer     *time.Timer
}

// Scheduler runs delayed one-shot tasks that can be cancelled until they fire.
type Scheduler struct {
	mu      sync.Mutex
	pending map[string]*task
	idle    chan struct{}
}

func NewScheduler() *Scheduler {
	idle := make(chan struct{})
	close(idle)

	return &Scheduler{
		pending: make(map[string]*task),
		idle:    idle,
	}
}

// After runs fn once delay has elapsed and returns the task id.
// A task is removed from the pending set before fn runs.
func (s *Scheduler) After(delay time.Duration, label string, fn func()) string {
	id := uuid.New().String()[:8]
	t := &task{ID: id, Label: label, CreatedAt: time.Now()}

	s.mu.Lock()
	if len(s.pending) == 0 {
		s.idle = make(chan struct{})
	}
	s.pending[id] = t
	t.timer = time.AfterFunc(delay, func() {
		if !s.remove(id) {
			return
		}
		fn()
	})
	s.mu.Unlock()

	logger.Debug("task scheduled", "id", id, "label", label, "delay", delay)
	return id
}

// Cancel stops a task that has not fired yet.
func (s *Scheduler) Cancel(id string) bool {
	s.mu.Lock()
	t, ok := s.pending[id]
	s.mu.Unlock()

	if !ok {
		return false
	}

	t.timer.Stop()
	if !s.remove(id) {
		return false
	}

	logger.Debug("task cancelled", "id", id, "label", t.Label)
	return true
}

// CancelAll cancels every pending task and returns how many were stopped.
func (s *Scheduler) CancelAll() int {
	s.mu.Lock()
	ids := make([]string, 0, len(s.pending))
	for id := range s.pending {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	n := 0
	for _, id := range ids {
		if s.Cancel(id) {
			n++
		}
	}
	return n
}

func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Wait blocks until no task is pending or ctx is done. Tasks whose function
// is still running count as finished.
func (s *Scheduler) Wait(ctx context.Context) error {
	s.mu.Lock()
	idle := s.idle
	s.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-idle:
		return nil
	}
}

func (s *Scheduler) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pending[id]; !ok {
		return false
	}

	delete(s.pending, id)
	if len(s.pending) == 0 {
		close(s.idle)
	}
	return true
}
