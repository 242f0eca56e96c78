package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	err   error
}

func (f *fakeExec) record(call string) error {
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error { return f.record("register") }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) Me(ctx context.Context) error                 { return f.record("me") }
func (f *fakeExec) Feed(ctx context.Context) error               { return f.record("feed") }
func (f *fakeExec) Tab(ctx context.Context, name string) error   { return f.record("tab " + name) }
func (f *fakeExec) Refresh(ctx context.Context) error            { return f.record("refresh") }
func (f *fakeExec) Focus(ctx context.Context) error              { return f.record("focus") }
func (f *fakeExec) Post(ctx context.Context) error               { return f.record("post") }
func (f *fakeExec) Comment(ctx context.Context, id string) error { return f.record("comment " + id) }
func (f *fakeExec) Delete(ctx context.Context, id string) error  { return f.record("delete " + id) }
func (f *fakeExec) CacheInfo(ctx context.Context) error          { return f.record("cache") }
func (f *fakeExec) Friends(ctx context.Context) error            { return f.record("friends") }
func (f *fakeExec) AddFriend(ctx context.Context, id string) error {
	return f.record("addfriend " + id)
}
func (f *fakeExec) Unfriend(ctx context.Context, id string) error {
	return f.record("unfriend " + id)
}
func (f *fakeExec) Stats(ctx context.Context) error { return f.record("stats") }
func (f *fakeExec) SetHidden(ctx context.Context, hidden bool) error {
	return f.record(fmt.Sprintf("hidden %t", hidden))
}
func (f *fakeExec) Upload(ctx context.Context, path string) error { return f.record("upload " + path) }

// capturePrints swaps printlnFn for the duration of the test and returns the
// printed lines.
func capturePrints(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSpace(fmt.Sprintln(a...)))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func runLines(exec execIface, lines ...string) {
	sc := bufio.NewScanner(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "status" }, sc)
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	capturePrints(t)

	exec := &fakeExec{}
	runLines(exec,
		"help",
		"feed",
		"login",
		"help",
		"tab friends",
		"refresh",
		"comment p1",
		"delete p2",
		"hide",
		"unhide",
		"upload /tmp/a.png",
		"logout",
		"stats",
		"exit",
	)

	assert.Equal(t, []string{
		"login",
		"tab friends",
		"refresh",
		"comment p1",
		"delete p2",
		"hidden true",
		"hidden false",
		"upload /tmp/a.png",
		"logout",
	}, exec.calls)
}

func TestRunREPL_GuestIsAskedToLogin(t *testing.T) {
	out := capturePrints(t)

	exec := &fakeExec{}
	runLines(exec, "feed", "quit")

	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, "Please login first. "+guestHelp)
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
}

func TestRunREPL_MissingArgumentPrintsUsage(t *testing.T) {
	out := capturePrints(t)

	exec := &fakeExec{loggedIn: true}
	runLines(exec, "tab", "comment", "addfriend", "quit")

	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, "Usage: tab <all|friends|mine>")
	assert.Contains(t, *out, "Usage: comment <post-id>")
	assert.Contains(t, *out, "Usage: addfriend <user-id>")
}

func TestRunREPL_HandlerErrorKeepsLoopAlive(t *testing.T) {
	out := capturePrints(t)

	exec := &fakeExec{loggedIn: true, err: errors.New("backend down")}
	runLines(exec, "refresh", "friends", "exit")

	require.Equal(t, []string{"refresh", "friends"}, exec.calls)
	assert.Contains(t, *out, "error: backend down")
}

func TestRunREPL_UnknownCommandAndEOF(t *testing.T) {
	out := capturePrints(t)

	exec := &fakeExec{loggedIn: true}
	runLines(exec, "", "frobnicate")

	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, "Unknown command: frobnicate")
	assert.NotContains(t, *out, "Bye!")
}

func TestRunREPL_HelpListsEnvironment(t *testing.T) {
	out := capturePrints(t)

	runLines(&fakeExec{}, "help", "exit")

	assert.Contains(t, *out, guestHelp)
	assert.Contains(t, strings.Join(*out, "\n"), "NOMAD_BASE_URL")
}

func TestRunREPL_PromptShowsStatus(t *testing.T) {
	out := capturePrints(t)

	runLines(&fakeExec{}, "exit")

	require.NotEmpty(t, *out)
	assert.Equal(t, "nomad status>", (*out)[0])
}
