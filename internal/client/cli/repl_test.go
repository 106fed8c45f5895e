package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	err   error
}

func (f *fakeExec) record(c string) error {
	f.calls = append(f.calls, c)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool                          { return f.loggedIn }
func (f *fakeExec) Register(context.Context) error            { return f.record("register") }
func (f *fakeExec) ShowProfile(context.Context) error         { return f.record("profile") }
func (f *fakeExec) EditProfile(context.Context) error         { return f.record("edit") }
func (f *fakeExec) Publish(context.Context) error             { return f.record("publish") }
func (f *fakeExec) MyPage(context.Context) error              { return f.record("mypage") }
func (f *fakeExec) Serve(context.Context) error               { return f.record("serve") }
func (f *fakeExec) Reset(context.Context) error               { return f.record("reset") }
func (f *fakeExec) UploadAvatar(_ context.Context, file string) error {
	return f.record("avatar " + file)
}
func (f *fakeExec) View(_ context.Context, path string) error { return f.record("view " + path) }

func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}

func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var out []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		out = append(out, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &out
}

func run(exec execIface, lines ...string) {
	in := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "status" }, in)
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	out := captureOutput(t)
	exec := &fakeExec{}

	run(exec,
		"help",
		"profile",
		"login",
		"help",
		"edit",
		"avatar me.png",
		"publish",
		"mypage",
		"view Ann-Lee",
		"serve",
		"reset",
		"logout",
		"foobar",
		"exit",
		"login",
	)

	assert.Equal(t, []string{
		"login", "edit", "avatar me.png", "publish", "mypage",
		"view Ann-Lee", "serve", "reset", "logout",
	}, exec.calls)
	assert.Contains(t, *out, helpAnonymous)
	assert.Contains(t, *out, helpSignedIn)
	assert.Contains(t, *out, "Please login first")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "Bye!")
	assert.Contains(t, *out, "pk status> ")
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	out := captureOutput(t)
	exec := &fakeExec{loggedIn: true}

	run(exec, "view", "avatar", "", "quit", "view x")

	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, "Usage: view <path>")
	assert.Contains(t, *out, "Usage: avatar <file>")
}

func TestRunREPL_ReportsErrorsAndContinues(t *testing.T) {
	out := captureOutput(t)
	exec := &fakeExec{err: errors.New("boom")}

	run(exec, "view a", "view b")

	assert.Equal(t, []string{"view a", "view b"}, exec.calls)
	assert.Contains(t, *out, "Error: boom")
}

func TestRunREPL_EOFWithoutExit(t *testing.T) {
	captureOutput(t)
	exec := &fakeExec{}

	run(exec, "reset")

	assert.Equal(t, []string{"reset"}, exec.calls)
}
