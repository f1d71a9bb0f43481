package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	calls []string
	args  [][]string
	err   error
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.err
}

func (f *fakeExec) Trips(ctx context.Context) error { return f.record("trips", nil) }
func (f *fakeExec) AddTrip(ctx context.Context, args []string) error {
	return f.record("addtrip", args)
}
func (f *fakeExec) RenameTrip(ctx context.Context, args []string) error {
	return f.record("renametrip", args)
}
func (f *fakeExec) DeleteTrip(ctx context.Context, args []string) error {
	return f.record("deltrip", args)
}
func (f *fakeExec) Entries(ctx context.Context, args []string) error {
	return f.record("entries", args)
}
func (f *fakeExec) AddEntry(ctx context.Context, args []string) error {
	return f.record("addentry", args)
}
func (f *fakeExec) EditEntry(ctx context.Context, args []string) error {
	return f.record("editentry", args)
}
func (f *fakeExec) DeleteEntry(ctx context.Context, args []string) error {
	return f.record("delentry", args)
}
func (f *fakeExec) Images(ctx context.Context, args []string) error {
	return f.record("images", args)
}
func (f *fakeExec) AddImage(ctx context.Context, args []string) error {
	return f.record("addimage", args)
}
func (f *fakeExec) DeleteImage(ctx context.Context, args []string) error {
	return f.record("delimage", args)
}
func (f *fakeExec) Publish(ctx context.Context, args []string) error {
	return f.record("publish", args)
}
func (f *fakeExec) Remote(ctx context.Context) error { return f.record("remote", nil) }
func (f *fakeExec) RemoteGet(ctx context.Context, args []string) error {
	return f.record("remoteget", args)
}

func run(exec execIface, input string, prompt bool) string {
	var out bytes.Buffer
	runREPL(context.Background(), exec, bufio.NewReader(strings.NewReader(input)), &out, prompt)
	return out.String()
}

func TestRunREPL_Dispatch(t *testing.T) {
	exec := &fakeExec{}
	input := strings.Join([]string{
		"help",
		"trips",
		"addtrip Japan 2025",
		"",
		"entries 1",
		"publish 3",
		"remote",
		"remoteget abc",
		"foobar",
		"exit",
		"trips",
	}, "\n")

	out := run(exec, input, false)

	assert.Equal(t, []string{"trips", "addtrip", "entries", "publish", "remote", "remoteget"}, exec.calls)
	assert.Equal(t, []string{"Japan", "2025"}, exec.args[1])
	assert.Contains(t, out, "Available commands:")
	assert.Contains(t, out, "Unknown command: foobar")
	assert.Contains(t, out, "Bye!")
	assert.NotContains(t, out, "travelbook> ")
}

func TestRunREPL_PromptOnlyWhenInteractive(t *testing.T) {
	out := run(&fakeExec{}, "trips\n", true)
	assert.Equal(t, 2, strings.Count(out, "travelbook> "))
}

func TestRunREPL_ReportsErrors(t *testing.T) {
	exec := &fakeExec{err: errors.New("store unavailable")}
	out := run(exec, "trips\n", false)
	assert.Contains(t, out, "Error: store unavailable")

	exec = &fakeExec{err: usageError("deltrip <id>")}
	out = run(exec, "deltrip\n", false)
	assert.Contains(t, out, "Usage: deltrip <id>")
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	exec := &fakeExec{}
	run(exec, "trips", false)
	assert.Equal(t, []string{"trips"}, exec.calls)
}
