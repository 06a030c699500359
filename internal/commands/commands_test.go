package commands_test

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/testutil"
)

// runCommand is a helper to run a command with FakeService.
func runCommand(t *testing.T, cmd commands.Command, svc service.Service, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: quiet,
	}

	code = cmd.Run(context.Background(), cfg, svc, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestVersionCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.VersionCmd{}, nil, nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "todo 0.1.0\n", stdout)
}

func TestHelpCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.HelpCmd{}, nil, nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, "Usage:")
	for _, cmd := range commands.DefaultRegistry.All() {
		assert.Contains(t, stdout, cmd.Usage(), "help should mention %s", cmd.Name())
	}
}

func TestListCommand_Starter(t *testing.T) {
	svc := testutil.NewSeededFakeService()

	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, svc, nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	expected := "   1  [ ] Buy groceries\n" +
		"   2  [ ] Complete homework\n" +
		"   3  [x] Call friend\n" +
		"   4  [ ] Go to gym\n" +
		"------------\n" +
		"4 tasks, 1 completed\n"
	assert.Equal(t, expected, stdout)
}

func TestListCommand_OpenOnly(t *testing.T) {
	svc := testutil.NewSeededFakeService()

	cmd := &commands.ListCmd{}
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--open"}))

	stdout, _, code := runCommand(t, cmd, svc, nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.NotContains(t, stdout, "Call friend")
	assert.Contains(t, stdout, "3 tasks, 0 completed")
}

func TestListCommand_Empty(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.ListCmd{}, testutil.NewFakeService(), nil, false)
	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "no tasks found\n", stdout)
}

func TestListCommand_EmptyQuiet(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.ListCmd{}, testutil.NewFakeService(), nil, true)
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stdout)
}

func TestListCommand_UnexpectedArg(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.ListCmd{}, testutil.NewFakeService(), []string{"work"}, false)
	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: unexpected argument: work\n", stderr)
}

func TestAddCommand_Success(t *testing.T) {
	svc := testutil.NewSeededFakeService()

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"Read", "book"}, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "added 5\n", stdout)

	tasks := svc.Snapshot()
	assert.Equal(t, service.Task{ID: 5, Title: "Read book"}, tasks[len(tasks)-1])
}

func TestAddCommand_Quiet(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"Buy", "milk"}, true)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Empty(t, stdout)
	assert.Len(t, svc.Snapshot(), 1)
}

func TestAddCommand_BlankTitle(t *testing.T) {
	for _, args := range [][]string{nil, {""}, {"   "}} {
		svc := testutil.NewSeededFakeService()

		stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, args, false)

		assert.Equal(t, exitcode.UserError, code)
		assert.Empty(t, stdout)
		assert.Equal(t, "error: title required\n", stderr)
		assert.Equal(t, service.StarterTasks(), svc.Snapshot())
	}
}

func TestAddCommand_DelegatesTrimming(t *testing.T) {
	svc := testutil.NewFakeService()

	runCommand(t, &commands.AddCmd{}, svc, []string{" Buy milk "}, true)

	assert.Equal(t, []string{"add  Buy milk "}, svc.Calls)
	assert.Equal(t, "Buy milk", svc.Snapshot()[0].Title)
}

func TestAddCommand_BackendError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddErr = errors.New("boom")

	_, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"x"}, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: boom\n", stderr)
}

func TestToggleCommand_Success(t *testing.T) {
	svc := testutil.NewSeededFakeService()

	stdout, stderr, code := runCommand(t, &commands.ToggleCmd{}, svc, []string{"3"}, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "ok\n", stdout)
	assert.False(t, svc.Snapshot()[2].Completed)
}

func TestToggleCommand_NoID(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.ToggleCmd{}, testutil.NewSeededFakeService(), nil, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Empty(t, stdout)
	assert.Equal(t, "error: task id required\n", stderr)
}

func TestToggleCommand_InvalidID(t *testing.T) {
	svc := testutil.NewSeededFakeService()

	_, stderr, code := runCommand(t, &commands.ToggleCmd{}, svc, []string{"abc"}, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "error: invalid task id: abc\n", stderr)
	assert.Empty(t, svc.Calls)
}

func TestToggleCommand_NotFound(t *testing.T) {
	svc := testutil.NewSeededFakeService()

	stdout, stderr, code := runCommand(t, &commands.ToggleCmd{}, svc, []string{"999"}, false)

	assert.Equal(t, exitcode.NotFound, code)
	assert.Empty(t, stdout)
	assert.Equal(t, "error: task not found: 999\n", stderr)
	assert.Equal(t, service.StarterTasks(), svc.Snapshot())
}

func TestRmCommand_Success(t *testing.T) {
	svc := testutil.NewSeededFakeService()

	stdout, stderr, code := runCommand(t, &commands.RmCmd{}, svc, []string{"2"}, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "ok\n", stdout)

	var ids []int
	for _, task := range svc.Snapshot() {
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []int{1, 3, 4}, ids)
}

func TestRmCommand_NotFound(t *testing.T) {
	svc := testutil.NewSeededFakeService()

	_, stderr, code := runCommand(t, &commands.RmCmd{}, svc, []string{"999"}, false)

	assert.Equal(t, exitcode.NotFound, code)
	assert.Equal(t, "error: task not found: 999\n", stderr)
	assert.Len(t, svc.Snapshot(), 4)
}

func TestRmCommand_Quiet(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.RmCmd{}, testutil.NewSeededFakeService(), []string{"1"}, true)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
}

func TestRegistry_AliasesResolve(t *testing.T) {
	for alias, name := range map[string]string{
		"ls":     "list",
		"create": "add",
		"done":   "toggle",
		"delete": "rm",
		"?":      "help",
	} {
		cmd, ok := commands.DefaultRegistry.Find(alias)
		if assert.True(t, ok, alias) {
			assert.Equal(t, name, cmd.Name())
		}
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	r := commands.NewRegistry()
	assert.NoError(t, r.Register(&commands.ListCmd{}))
	assert.EqualError(t, r.Register(&commands.ListCmd{}), "command name already registered: list")
}

func TestRegistry_AllSortedByName(t *testing.T) {
	var names []string
	for _, cmd := range commands.DefaultRegistry.All() {
		names = append(names, cmd.Name())
	}
	assert.Equal(t, []string{"add", "help", "list", "rm", "toggle", "version"}, names)
}
