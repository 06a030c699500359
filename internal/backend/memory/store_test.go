package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/service"
)

func seeded(t *testing.T, policy IDPolicy) *Store {
	t.Helper()
	s := New(policy)
	s.Seed(service.StarterTasks())
	return s
}

func ids(tasks []service.Task) []int {
	out := make([]int, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestStore_SeedThenAdd(t *testing.T) {
	s := seeded(t, PolicyCounter)

	assert.Equal(t, service.StarterTasks(), s.List())

	task, err := s.Add("Read book")
	require.NoError(t, err)
	assert.Equal(t, service.Task{ID: 5, Title: "Read book", Completed: false}, task)

	list := s.List()
	require.Len(t, list, 5)
	assert.Equal(t, task, list[4])
}

func TestStore_AddToEmptyStartsAtOne(t *testing.T) {
	s := New(PolicyCounter)

	task, err := s.Add("first")
	require.NoError(t, err)
	assert.Equal(t, 1, task.ID)
}

func TestStore_AddTrimsTitle(t *testing.T) {
	s := New(PolicyCounter)

	task, err := s.Add(" Buy milk ")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", task.Title)
}

func TestStore_AddRejectsBlank(t *testing.T) {
	for _, title := range []string{"", "   ", "\t\n"} {
		s := seeded(t, PolicyCounter)
		before := s.List()

		_, err := s.Add(title)
		require.ErrorIs(t, err, service.ErrInvalidInput, "title %q", title)
		assert.Equal(t, before, s.List())
	}
}

func TestStore_ToggleRoundTrip(t *testing.T) {
	s := seeded(t, PolicyCounter)
	before := s.List()

	first, err := s.Toggle(3)
	require.NoError(t, err)
	assert.False(t, first.Completed)
	assert.Equal(t, []int{1, 2, 3, 4}, ids(s.List()))

	second, err := s.Toggle(3)
	require.NoError(t, err)
	assert.True(t, second.Completed)
	assert.Equal(t, before, s.List())
}

func TestStore_RemovePreservesOrder(t *testing.T) {
	s := seeded(t, PolicyCounter)

	require.NoError(t, s.Remove(2))
	assert.Equal(t, []int{1, 3, 4}, ids(s.List()))
}

func TestStore_UnknownID(t *testing.T) {
	s := seeded(t, PolicyCounter)
	before := s.List()

	_, err := s.Toggle(999)
	assert.ErrorIs(t, err, service.ErrNotFound)

	err = s.Remove(999)
	assert.ErrorIs(t, err, service.ErrNotFound)

	assert.Equal(t, before, s.List())
}

func TestStore_CounterNeverReusesRemovedMax(t *testing.T) {
	s := seeded(t, PolicyCounter)

	require.NoError(t, s.Remove(4))
	task, err := s.Add("after removal")
	require.NoError(t, err)
	assert.Equal(t, 5, task.ID)

	require.NoError(t, s.Remove(5))
	task, err = s.Add("again")
	require.NoError(t, err)
	assert.Equal(t, 6, task.ID)
}

func TestStore_MaxPolicyReusesRemovedMax(t *testing.T) {
	s := seeded(t, PolicyMax)

	require.NoError(t, s.Remove(4))
	task, err := s.Add("after removal")
	require.NoError(t, err)
	assert.Equal(t, 4, task.ID)
}

func TestStore_IDsUniqueAndMonotonic(t *testing.T) {
	s := seeded(t, PolicyCounter)

	last := 4
	for i := 0; i < 50; i++ {
		task, err := s.Add("task")
		require.NoError(t, err)
		assert.Greater(t, task.ID, last)
		last = task.ID

		// Remove every other task, including the current maximum.
		if i%2 == 0 {
			require.NoError(t, s.Remove(task.ID))
		}

		seen := make(map[int]bool)
		for _, id := range ids(s.List()) {
			assert.False(t, seen[id], "duplicate id %d", id)
			seen[id] = true
		}
	}
}

func TestStore_SeedCopiesInput(t *testing.T) {
	in := service.StarterTasks()
	s := New(PolicyCounter)
	s.Seed(in)

	in[0].Title = "mutated"
	assert.Equal(t, "Buy groceries", s.List()[0].Title)

	out := s.List()
	out[1].Completed = true
	assert.False(t, s.List()[1].Completed)
}

func TestStore_SeedRaisesCounter(t *testing.T) {
	s := New(PolicyCounter)
	_, err := s.Add("one")
	require.NoError(t, err)

	s.Seed([]service.Task{{ID: 10, Title: "ten"}})
	task, err := s.Add("next")
	require.NoError(t, err)
	assert.Equal(t, 11, task.ID)
}

func TestParseIDPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    IDPolicy
		wantErr bool
	}{
		{"", PolicyCounter, false},
		{"counter", PolicyCounter, false},
		{" MAX ", PolicyMax, false},
		{"random", "", true},
	}
	for _, tt := range tests {
		got, err := ParseIDPolicy(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}
