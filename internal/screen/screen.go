// Package screen owns the task store for the lifetime of one screen.
//
// A Screen is created when a view starts, seeded with the starter set and
// dropped when the view exits. It is the only place a store is reachable
// from, and it serializes every call so that views receiving events from
// several goroutines (HTTP) still present one operation at a time.
package screen

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"todo/internal/backend/memory"
	"todo/internal/config"
	"todo/internal/service"
)

// Screen implements service.Service on top of a memory.Store.
type Screen struct {
	id     string
	logger *slog.Logger

	mu    sync.Mutex
	store *memory.Store
}

// New creates a screen using cfg's id policy and starter set.
// A nil logger discards log output.
func New(cfg *config.Config, logger *slog.Logger) (*Screen, error) {
	policy, err := memory.ParseIDPolicy(cfg.File.IDPolicy)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", config.ConfigFile, err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	id := uuid.NewString()
	s := &Screen{
		id:     id,
		logger: logger.With("session", id),
		store:  memory.New(policy),
	}
	s.Seed(cfg.StarterTasks())
	return s, nil
}

// ID returns the session id assigned at creation.
func (s *Screen) ID() string {
	return s.id
}

// Seed implements service.Service.
func (s *Screen) Seed(initial []service.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Seed(initial)
	s.logger.Debug("seeded", "tasks", len(initial), "policy", s.store.Policy())
}

// List implements service.Service.
func (s *Screen) List() []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.List()
}

// Add implements service.Service.
func (s *Screen) Add(title string) (service.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.store.Add(title)
	if err != nil {
		s.logFailure("add", err)
		return service.Task{}, err
	}
	s.logger.Debug("task added", "id", task.ID, "title", task.Title)
	return task, nil
}

// Toggle implements service.Service.
func (s *Screen) Toggle(id int) (service.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.store.Toggle(id)
	if err != nil {
		s.logFailure("toggle", err, "id", id)
		return service.Task{}, err
	}
	s.logger.Debug("task toggled", "id", task.ID, "completed", task.Completed)
	return task, nil
}

// Remove implements service.Service.
func (s *Screen) Remove(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Remove(id); err != nil {
		s.logFailure("remove", err, "id", id)
		return err
	}
	s.logger.Debug("task removed", "id", id)
	return nil
}

// Close ends the screen's lifetime. The store is released with the screen.
func (s *Screen) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Debug("screen closed", "tasks", len(s.store.List()))
}

// logFailure reports expected, locally recovered errors at info level and
// anything else at error level.
func (s *Screen) logFailure(op string, err error, args ...any) {
	args = append([]any{"op", op, "err", err}, args...)
	if errors.Is(err, service.ErrInvalidInput) || errors.Is(err, service.ErrNotFound) {
		s.logger.Info("operation rejected", args...)
		return
	}
	s.logger.Error("operation failed", args...)
}
