package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Makepad-fr/tada/internal/coord"
	"github.com/Makepad-fr/tada/internal/mockapi"
	"github.com/Makepad-fr/tada/internal/notify"
	"github.com/Makepad-fr/tada/internal/prefs"
	"github.com/Makepad-fr/tada/internal/remote"
)

type world struct {
	api   *mockapi.Server
	todos *remote.Todos
	users *remote.Users
	prefs *prefs.Store
}

func newWorld(t *testing.T) *world {
	t.Helper()
	api := mockapi.New(zap.NewNop(), "todo", "users")
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	todos, err := remote.NewTodos(srv.URL + "/todo")
	require.NoError(t, err)
	users, err := remote.NewUsers(srv.URL + "/users")
	require.NoError(t, err)
	store, err := prefs.NewStore(filepath.Join(t.TempDir(), "prefs.toml"))
	require.NoError(t, err)
	return &world{api: api, todos: todos, users: users, prefs: store}
}

type result struct {
	code     int
	out, err string
}

func (w *world) run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	code := Run(context.Background(), args, &Env{
		Todos: w.todos,
		Users: w.users,
		Prefs: w.prefs,
		In:    strings.NewReader(stdin),
		Out:   &out,
		Err:   &errOut,
	})
	return result{code: code, out: out.String(), err: errOut.String()}
}

func (w *world) register(t *testing.T, name string) {
	t.Helper()
	r := w.run(t, "secret\n", "register", name)
	require.Equal(t, 0, r.code, r.err)
}

func TestRun_NoArgsIsUsage(t *testing.T) {
	w := newWorld(t)
	r := w.run(t, "")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.out, "Usage:")
}

func TestRun_UnknownSubcommand(t *testing.T) {
	w := newWorld(t)
	r := w.run(t, "", "frobnicate")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.err, "unknown subcommand: frobnicate")
}

func TestRun_Help(t *testing.T) {
	w := newWorld(t)
	r := w.run(t, "", "help")
	assert.Equal(t, 0, r.code)
	assert.Contains(t, r.out, "register <username>")
}

func TestAccountFlow(t *testing.T) {
	w := newWorld(t)

	r := w.run(t, "", "whoami")
	assert.Equal(t, 0, r.code)
	assert.Contains(t, r.out, "not logged in")

	r = w.run(t, "secret\n", "register", "alice")
	require.Equal(t, 0, r.code, r.err)
	assert.Contains(t, r.out, "registered and logged in as alice")

	r = w.run(t, "", "whoami")
	assert.Contains(t, r.out, "username: alice")

	r = w.run(t, "", "logout")
	assert.Equal(t, 0, r.code)
	_, err := w.prefs.Session()
	assert.Error(t, err)

	r = w.run(t, "nope\n", "login", "alice")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.err, "wrong username or password")

	r = w.run(t, "secret\n", "login", "alice")
	assert.Equal(t, 0, r.code, r.err)
	assert.Contains(t, r.out, "logged in as alice")

	r = w.run(t, "secret\n", "register", "alice")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.err, "already taken")
}

func TestRegister_InvalidInputIsUsage(t *testing.T) {
	w := newWorld(t)
	r := w.run(t, "secret\n", "register", "a")
	assert.Equal(t, 2, r.code)

	r = w.run(t, "", "register")
	assert.Equal(t, 2, r.code)
}

func TestItems_RequireLogin(t *testing.T) {
	w := newWorld(t)
	r := w.run(t, "", "add", "milk")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.err, "not logged in")
	assert.Empty(t, w.api.Snapshot("todo"))
}

func TestItemLifecycle(t *testing.T) {
	w := newWorld(t)
	w.register(t, "alice")

	r := w.run(t, "", "add", "buy", "milk")
	require.Equal(t, 0, r.code, r.err)
	assert.Contains(t, r.out, "To-do created")

	recs := w.api.Snapshot("todo")
	require.Len(t, recs, 1)
	assert.Equal(t, "buy milk", recs[0]["text"])
	assert.Equal(t, "alice", recs[0]["username"])

	r = w.run(t, "", "ls", "-plain")
	assert.Equal(t, 0, r.code)
	assert.Contains(t, r.out, "buy milk")
	assert.Contains(t, r.out, "page 1/1")

	r = w.run(t, "", "done", "1")
	assert.Equal(t, 0, r.code, r.err)
	assert.Contains(t, r.out, "marked done")
	assert.Equal(t, true, w.api.Snapshot("todo")[0]["done"])

	r = w.run(t, "", "undone", "1")
	assert.Equal(t, 0, r.code, r.err)
	assert.Equal(t, false, w.api.Snapshot("todo")[0]["done"])

	r = w.run(t, "", "edit", "1", "buy", "oat", "milk")
	assert.Equal(t, 0, r.code, r.err)
	assert.Contains(t, r.out, "To-do updated")
	assert.Equal(t, "buy oat milk", w.api.Snapshot("todo")[0]["text"])

	r = w.run(t, "n\n", "rm", "1")
	assert.Equal(t, 0, r.code)
	assert.Contains(t, r.out, coord.DeletePrompt)
	assert.Contains(t, r.out, "kept")
	assert.Len(t, w.api.Snapshot("todo"), 1)

	r = w.run(t, "y\n", "rm", "1")
	assert.Equal(t, 0, r.code, r.err)
	assert.Empty(t, w.api.Snapshot("todo"))

	r = w.run(t, "", "ls", "-plain")
	assert.Contains(t, r.out, "No to-dos yet")
}

func TestItems_OnlyOwnAreListed(t *testing.T) {
	w := newWorld(t)
	w.api.Seed("todo", mockapi.Record{"username": "bob", "text": "bob's secret", "done": false})
	w.register(t, "alice")

	r := w.run(t, "", "ls", "-plain")
	assert.NotContains(t, r.out, "bob's secret")

	r = w.run(t, "", "rm", "-y", "1")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.err, "index out of range")
	assert.Len(t, w.api.Snapshot("todo"), 1)
}

func TestItems_BadIndex(t *testing.T) {
	w := newWorld(t)
	w.register(t, "alice")

	assert.Equal(t, 2, w.run(t, "", "done").code)
	assert.Equal(t, 2, w.run(t, "", "done", "x").code)
	assert.Equal(t, 2, w.run(t, "", "edit", "1").code)
	assert.Equal(t, 2, w.run(t, "", "add").code)
}

func TestAdd_BlankTextIsRejected(t *testing.T) {
	w := newWorld(t)
	w.register(t, "alice")

	r := w.run(t, "", "add", "   ")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.err, "Please enter some text")
	assert.Empty(t, w.api.Snapshot("todo"))
}

func TestList_Paging(t *testing.T) {
	w := newWorld(t)
	w.register(t, "alice")
	for _, text := range []string{"one", "two", "three", "four", "five", "six", "seven"} {
		w.api.Seed("todo", mockapi.Record{"username": "alice", "text": text, "done": false})
	}

	r := w.run(t, "", "ls", "-plain", "-page", "2")
	assert.Contains(t, r.out, "six")
	assert.NotContains(t, r.out, "three")
	assert.Contains(t, r.out, "page 2/2")

	r = w.run(t, "", "ls", "-plain", "-page", "9")
	assert.Contains(t, r.out, "page 2/2")
}

func TestSettings(t *testing.T) {
	w := newWorld(t)

	assert.Equal(t, 2, w.run(t, "", "settings", "0").code)
	assert.Equal(t, 2, w.run(t, "", "settings").code)

	r := w.run(t, "", "settings", "3")
	assert.Equal(t, 0, r.code, r.err)
	p, err := w.prefs.Load()
	require.NoError(t, err)
	assert.Equal(t, 3, p.ItemsPerPage)

	w.register(t, "alice")
	r = w.run(t, "", "settings", "3")
	assert.Equal(t, 0, r.code)
	assert.Contains(t, r.out, "already 3 per page")

	r = w.run(t, "", "settings", "2")
	assert.Equal(t, 0, r.code, r.err)
	assert.Contains(t, r.out, "Settings saved")
	p, _ = w.prefs.Load()
	assert.Equal(t, 2, p.ItemsPerPage)
}

func TestList_InteractiveHandsOff(t *testing.T) {
	w := newWorld(t)
	w.register(t, "alice")

	var called bool
	var out, errOut bytes.Buffer
	code := Run(context.Background(), []string{"ls"}, &Env{
		Todos: w.todos,
		Users: w.users,
		Prefs: w.prefs,
		In:    strings.NewReader(""),
		Out:   &out,
		Err:   &errOut,
		TUI: func(_ context.Context, app *coord.App, q *notify.Queue) error {
			called = true
			assert.Equal(t, "alice", app.Owner())
			assert.NotNil(t, q)
			return nil
		},
	})
	assert.Equal(t, 0, code)
	assert.True(t, called)
}

func TestList_ServerDown(t *testing.T) {
	w := newWorld(t)
	w.register(t, "alice")
	todos, err := remote.NewTodos("http://127.0.0.1:1/todo")
	require.NoError(t, err)
	w.todos = todos

	r := w.run(t, "", "ls", "-plain")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.err, "Failed to load to-dos")
}

func TestList_InteractiveServerDownIsReported(t *testing.T) {
	w := newWorld(t)
	w.register(t, "alice")
	todos, err := remote.NewTodos("http://127.0.0.1:1/todo")
	require.NoError(t, err)

	var called bool
	var out, errOut bytes.Buffer
	code := Run(context.Background(), []string{"ls"}, &Env{
		Todos: todos,
		Users: w.users,
		Prefs: w.prefs,
		In:    strings.NewReader(""),
		Out:   &out,
		Err:   &errOut,
		TUI: func(context.Context, *coord.App, *notify.Queue) error {
			called = true
			return nil
		},
	})
	assert.Equal(t, 1, code)
	assert.False(t, called)
	assert.Contains(t, errOut.String(), "Failed to load to-dos")
}

func TestPage(t *testing.T) {
	w := newWorld(t)
	w.register(t, "alice")
	for _, text := range []string{"one", "two", "three", "four", "five", "six"} {
		w.api.Seed("todo", mockapi.Record{"username": "alice", "text": text, "done": false})
	}

	r := w.run(t, "", "page", "2")
	assert.Equal(t, 0, r.code, r.err)
	assert.Contains(t, r.out, "six")
	assert.NotContains(t, r.out, "five")
	assert.Contains(t, r.out, "page 2/2")

	assert.Equal(t, 2, w.run(t, "", "page").code)
	assert.Equal(t, 2, w.run(t, "", "page", "0").code)
	assert.Equal(t, 2, w.run(t, "", "page", "x").code)
}
