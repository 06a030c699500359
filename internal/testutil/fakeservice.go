// Package testutil provides testing utilities.
package testutil

import (
	"fmt"
	"strings"
	"sync"

	"todo/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
// Ids are assigned as max+1; error fields let tests force failures.
type FakeService struct {
	mu    sync.Mutex
	tasks []service.Task

	// Calls records every invoked operation, e.g. "add Buy milk", "toggle 3".
	Calls []string

	// Error injection for testing
	AddErr    error
	ToggleErr error
	RemoveErr error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{}
}

// NewSeededFakeService creates a FakeService holding the starter set.
func NewSeededFakeService() *FakeService {
	f := NewFakeService()
	f.tasks = service.StarterTasks()
	return f
}

// AddTask appends a task directly, bypassing validation.
func (f *FakeService) AddTask(id int, title string, completed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{ID: id, Title: title, Completed: completed})
}

// Seed implements service.Service.
func (f *FakeService) Seed(initial []service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, "seed")
	f.tasks = append([]service.Task(nil), initial...)
}

// List implements service.Service.
func (f *FakeService) List() []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, "list")
	return append([]service.Task(nil), f.tasks...)
}

// Add implements service.Service.
func (f *FakeService) Add(title string) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, "add "+title)
	if f.AddErr != nil {
		return service.Task{}, f.AddErr
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return service.Task{}, fmt.Errorf("%w: title required", service.ErrInvalidInput)
	}
	next := 0
	for _, t := range f.tasks {
		next = max(next, t.ID)
	}
	task := service.Task{ID: next + 1, Title: title}
	f.tasks = append(f.tasks, task)
	return task, nil
}

// Toggle implements service.Service.
func (f *FakeService) Toggle(id int) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, fmt.Sprintf("toggle %d", id))
	if f.ToggleErr != nil {
		return service.Task{}, f.ToggleErr
	}

	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Completed = !f.tasks[i].Completed
			return f.tasks[i], nil
		}
	}
	return service.Task{}, fmt.Errorf("%w: %d", service.ErrNotFound, id)
}

// Remove implements service.Service.
func (f *FakeService) Remove(id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, fmt.Sprintf("remove %d", id))
	if f.RemoveErr != nil {
		return f.RemoveErr
	}

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %d", service.ErrNotFound, id)
}

// Snapshot returns the current tasks without recording a call.
func (f *FakeService) Snapshot() []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]service.Task(nil), f.tasks...)
}
