// Package service defines the backend-agnostic contract for task operations.
package service

// Service defines the operations a presentation layer may invoke.
// Every view (terminal UI, shell, HTTP) goes through this interface.
// Views never hold or mutate the task collection directly.
type Service interface {
	// Seed replaces the contents with initial, preserving its order.
	// Called once when a screen starts.
	Seed(initial []Task)

	// List returns a snapshot of all tasks in display order.
	List() []Task

	// Add trims title and appends a new open task.
	// Returns ErrInvalidInput if the trimmed title is empty.
	Add(title string) (Task, error)

	// Toggle flips the completion flag of the task with the given id.
	// Returns ErrNotFound if no such task exists.
	Toggle(id int) (Task, error)

	// Remove deletes the task with the given id.
	// Returns ErrNotFound if no such task exists.
	Remove(id int) error
}
