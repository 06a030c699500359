package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput is returned when a title is blank after trimming.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned when no task matches the given id.
	ErrNotFound = errors.New("task not found")
)

// ValidateSeed checks that tasks can be used as a starter set:
// ids must be positive and distinct, titles must not be blank.
func ValidateSeed(tasks []Task) error {
	seen := make(map[int]struct{}, len(tasks))
	for i, t := range tasks {
		if t.ID < 1 {
			return fmt.Errorf("%w: task %d: id must be positive, got %d", ErrInvalidInput, i+1, t.ID)
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("%w: task %d: duplicate id %d", ErrInvalidInput, i+1, t.ID)
		}
		seen[t.ID] = struct{}{}
		if strings.TrimSpace(t.Title) == "" {
			return fmt.Errorf("%w: task %d: title required", ErrInvalidInput, i+1)
		}
	}
	return nil
}
