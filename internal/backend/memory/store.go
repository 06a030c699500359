// Package memory implements the service.Service interface with an in-memory,
// insertion-ordered task list.
package memory

import (
	"fmt"
	"slices"
	"strings"

	"todo/internal/service"
)

// IDPolicy selects how the store allocates ids for new tasks.
type IDPolicy string

const (
	// PolicyCounter never reissues an id within the store's lifetime,
	// even after the task holding the highest id is removed.
	PolicyCounter IDPolicy = "counter"

	// PolicyMax recomputes max(existing ids)+1 on every add. Removing the
	// highest-id task lets its id be issued again.
	PolicyMax IDPolicy = "max"
)

// ParseIDPolicy parses a policy name. An empty name selects PolicyCounter.
func ParseIDPolicy(name string) (IDPolicy, error) {
	switch IDPolicy(strings.ToLower(strings.TrimSpace(name))) {
	case "", PolicyCounter:
		return PolicyCounter, nil
	case PolicyMax:
		return PolicyMax, nil
	default:
		return "", fmt.Errorf("unknown id policy: %s", name)
	}
}

// Store implements service.Service.
//
// Store does no locking. Callers serialize access; see the screen package.
type Store struct {
	policy IDPolicy
	tasks  []service.Task

	// next is the lowest id PolicyCounter may hand out.
	next int
}

// New creates an empty store using the given id policy.
func New(policy IDPolicy) *Store {
	if policy == "" {
		policy = PolicyCounter
	}
	return &Store{policy: policy, next: 1}
}

// Policy returns the store's id policy.
func (s *Store) Policy() IDPolicy {
	return s.policy
}

// Seed implements service.Service.
func (s *Store) Seed(initial []service.Task) {
	s.tasks = slices.Clone(initial)
	if m := s.maxID(); m >= s.next {
		s.next = m + 1
	}
}

// List implements service.Service.
func (s *Store) List() []service.Task {
	out := make([]service.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Add implements service.Service.
func (s *Store) Add(title string) (service.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return service.Task{}, fmt.Errorf("%w: title required", service.ErrInvalidInput)
	}

	task := service.Task{ID: s.allocate(), Title: title}
	s.tasks = append(s.tasks, task)
	return task, nil
}

// Toggle implements service.Service.
func (s *Store) Toggle(id int) (service.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return service.Task{}, fmt.Errorf("%w: %d", service.ErrNotFound, id)
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return s.tasks[i], nil
}

// Remove implements service.Service.
func (s *Store) Remove(id int) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %d", service.ErrNotFound, id)
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	return nil
}

func (s *Store) allocate() int {
	if s.policy == PolicyMax {
		return s.maxID() + 1
	}
	id := s.next
	s.next++
	return id
}

// maxID returns the largest id in the store, or 0 when empty.
func (s *Store) maxID() int {
	m := 0
	for _, t := range s.tasks {
		if t.ID > m {
			m = t.ID
		}
	}
	return m
}

func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.tasks, func(t service.Task) bool { return t.ID == id })
}
