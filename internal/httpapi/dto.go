package httpapi

import "todo/internal/service"

// CreateTaskRequest is the body of POST /tasks.
type CreateTaskRequest struct {
	Title string `json:"title"`
}

// TaskResponse is the JSON form of a task.
type TaskResponse struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func toResponse(t service.Task) TaskResponse {
	return TaskResponse{ID: t.ID, Title: t.Title, Completed: t.Completed}
}
