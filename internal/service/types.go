package service

// Task represents a single to-do item.
type Task struct {
	ID        int
	Title     string
	Completed bool
}

// starterTasks is the set every new screen starts with.
var starterTasks = []Task{
	{ID: 1, Title: "Buy groceries", Completed: false},
	{ID: 2, Title: "Complete homework", Completed: false},
	{ID: 3, Title: "Call friend", Completed: true},
	{ID: 4, Title: "Go to gym", Completed: false},
}

// StarterTasks returns a fresh copy of the default starter set.
func StarterTasks() []Task {
	out := make([]Task, len(starterTasks))
	copy(out, starterTasks)
	return out
}
