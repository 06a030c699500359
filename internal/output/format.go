// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todo/internal/service"
)

const (
	// Separator is printed between the task list and its summary line.
	Separator = "------------"

	// EmptyList is printed when there is nothing to show.
	EmptyList = "no tasks found"
)

// FormatTask formats a single task line.
// Format: "{ID:>4}  [x] {TITLE}\n" (4-wide right-aligned id, two spaces, mark, title)
func FormatTask(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "%4d  %s %s\n", task.ID, Mark(task), normalizeTitle(task.Title))
}

// FormatList writes every task followed by a summary.
// An empty list prints EmptyList instead.
func FormatList(w io.Writer, tasks []service.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, EmptyList)
		return
	}
	done := 0
	for _, task := range tasks {
		FormatTask(w, task)
		if task.Completed {
			done++
		}
	}
	fmt.Fprintln(w, Separator)
	fmt.Fprintln(w, Summary(len(tasks), done))
}

// Summary describes how many of total tasks are completed.
func Summary(total, done int) string {
	noun := "tasks"
	if total == 1 {
		noun = "task"
	}
	return fmt.Sprintf("%d %s, %d completed", total, noun, done)
}

// Mark returns the completion checkbox for a task.
func Mark(task service.Task) string {
	if task.Completed {
		return "[x]"
	}
	return "[ ]"
}

// normalizeTitle replaces newlines with spaces so one task stays on one line.
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	return strings.ReplaceAll(title, "\n", " ")
}
