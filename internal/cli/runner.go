// Package cli routes tada subcommands and maps their outcome to exit codes
// (0 ok, 1 error, 2 usage).
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Makepad-fr/tada/internal/auth"
	"github.com/Makepad-fr/tada/internal/coord"
	"github.com/Makepad-fr/tada/internal/errs"
	"github.com/Makepad-fr/tada/internal/notify"
	"github.com/Makepad-fr/tada/internal/paging"
	"github.com/Makepad-fr/tada/internal/prefs"
	"github.com/Makepad-fr/tada/internal/remote"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Interactive runs the full-screen list for a loaded session.
type Interactive func(ctx context.Context, app *coord.App, q *notify.Queue) error

// Env carries everything a subcommand needs.
type Env struct {
	Todos      remote.TodoStore
	Users      remote.UserStore
	Prefs      *prefs.Store
	Log        *zap.Logger
	MaxVisible int
	Now        func() time.Time

	In  io.Reader
	Out io.Writer
	Err io.Writer

	// TUI is used by `ls` unless -plain is given.
	TUI Interactive

	in *bufio.Reader
}

func (e *Env) reader() *bufio.Reader {
	if e.in == nil {
		e.in = bufio.NewReader(e.In)
	}
	return e.in
}

func (e *Env) ok(msg string)   { ui.OK(e.Out, msg) }
func (e *Env) fail(msg string) { ui.Fail(e.Err, msg) }

// Run dispatches subcommands and returns an exit code.
func Run(ctx context.Context, args []string, env *Env) int {
	if env.Log == nil {
		env.Log = zap.NewNop()
	}
	if env.Now == nil {
		env.Now = time.Now
	}
	if len(args) == 0 {
		PrintHelp(env.Out)
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(env.Out)
		return 0

	case "register":
		return doRegister(ctx, env, a)
	case "login":
		return doLogin(ctx, env, a)
	case "logout":
		return doLogout(env)
	case "whoami":
		return doWhoAmI(env)

	case "ls":
		return doList(ctx, env, a)
	case "add":
		if len(a) == 0 {
			env.fail("usage: tada add <text...>")
			return 2
		}
		return doAdd(ctx, env, strings.Join(a, " "))
	case "done", "undone":
		if len(a) != 1 {
			env.fail("usage: tada " + cmd + " <index>")
			return 2
		}
		return doSetDone(ctx, env, a[0], cmd == "done")
	case "edit":
		if len(a) < 2 {
			env.fail("usage: tada edit <index> <text...>")
			return 2
		}
		return doEdit(ctx, env, a[0], strings.Join(a[1:], " "))
	case "page":
		if len(a) != 1 {
			env.fail("usage: tada page <n>")
			return 2
		}
		if n, err := strconv.Atoi(a[0]); err != nil || n < 1 {
			env.fail("page must be a positive number: " + a[0])
			return 2
		}
		return doList(ctx, env, []string{"-plain", "-page", a[0]})
	case "rm":
		return doRemove(ctx, env, a)
	case "settings":
		if len(a) != 1 {
			env.fail("usage: tada settings <items-per-page>")
			return 2
		}
		return doSettings(ctx, env, a[0])
	}

	env.fail("unknown subcommand: " + cmd)
	fmt.Fprintln(env.Err)
	PrintHelp(env.Err)
	return 2
}

// PrintHelp writes the usage text.
func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `tada - to-do lists kept on a remote API

Usage:
  tada [-config file] <subcommand> [args]

Account:
  register <username>      Create an account (password read from stdin)
  login <username>         Log in (password read from stdin)
  logout                   Forget the stored session
  whoami                   Show the logged-in user

Items:
  ls [-plain] [-page N]    Browse items (interactive unless -plain)
  page <n>                 Print page n
  add <text...>            Add a new item
  done <index>             Mark item at 1-based index as done
  undone <index>           Mark item at 1-based index as not done
  edit <index> <text...>   Replace the text of an item
  rm [-y] <index>          Remove an item (asks unless -y)
  settings <n>             Set items per page

Examples:
  tada login alice
  tada add "Buy milk"
  tada page 2
  tada done 2
  tada rm -y 3
`)
}

// exitFor maps a reported operation error to an exit code.
func exitFor(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errs.ErrValidation), errors.Is(err, errs.ErrCancelled):
		return 2
	}
	return 1
}

// ---------------------------------------------------
// Account subcommands
// ---------------------------------------------------

func (e *Env) readPassword() (string, error) {
	fmt.Fprint(e.Out, "Password: ")
	line, err := e.reader().ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func credentials(env *Env, cmd string, a []string) (string, string, int) {
	if len(a) != 1 {
		env.fail("usage: tada " + cmd + " <username>")
		return "", "", 2
	}
	pw, err := env.readPassword()
	if err != nil {
		env.fail("read password: " + err.Error())
		return "", "", 1
	}
	return a[0], pw, 0
}

func doRegister(ctx context.Context, env *Env, a []string) int {
	username, password, code := credentials(env, "register", a)
	if code != 0 {
		return code
	}
	u, err := auth.NewService(env.Users, env.Log).CreateUser(ctx, username, password)
	switch {
	case errors.Is(err, errs.ErrValidation):
		env.fail(err.Error())
		return 2
	case errors.Is(err, errs.ErrAlreadyExists):
		env.fail("this username is already taken")
		return 1
	case err != nil:
		env.Log.Warn("register failed", zap.Error(err))
		env.fail("could not reach the server")
		return 1
	}
	if err := env.Prefs.SetUser(u.Username, u.ID); err != nil {
		env.fail("save session: " + err.Error())
		return 1
	}
	env.ok("registered and logged in as " + u.Username)
	return 0
}

func doLogin(ctx context.Context, env *Env, a []string) int {
	username, password, code := credentials(env, "login", a)
	if code != 0 {
		return code
	}
	u, err := auth.NewService(env.Users, env.Log).FindUser(ctx, username, password)
	switch {
	case errors.Is(err, errs.ErrValidation):
		env.fail(err.Error())
		return 2
	case errors.Is(err, errs.ErrUnauthorized):
		env.fail("wrong username or password")
		return 1
	case err != nil:
		env.Log.Warn("login failed", zap.Error(err))
		env.fail("could not reach the server")
		return 1
	}
	if err := env.Prefs.SetUser(u.Username, u.ID); err != nil {
		env.fail("save session: " + err.Error())
		return 1
	}
	env.ok("logged in as " + u.Username)
	return 0
}

func doLogout(env *Env) int {
	if err := env.Prefs.ClearUser(); err != nil {
		env.fail("logout: " + err.Error())
		return 1
	}
	env.ok("logged out")
	return 0
}

func doWhoAmI(env *Env) int {
	p, err := env.Prefs.Session()
	if errors.Is(err, errs.ErrNotLoggedIn) {
		fmt.Fprintln(env.Out, ui.MutedStyle.Render("not logged in"))
		fmt.Fprintln(env.Out, "Run: tada login <username>")
		return 0
	}
	if err != nil {
		env.fail(err.Error())
		return 1
	}
	fmt.Fprintf(env.Out, "username: %s\nuser id: %s\nitems per page: %d\n", p.Username, p.UserID, p.ItemsPerPage)
	return 0
}

// ---------------------------------------------------
// Item subcommands
// ---------------------------------------------------

// openApp builds and loads the session state from the stored preferences.
func openApp(ctx context.Context, env *Env, n notify.Notifier) (*coord.App, int) {
	p, err := env.Prefs.Session()
	if errors.Is(err, errs.ErrNotLoggedIn) {
		env.fail("not logged in. Run: tada login <username>")
		return nil, 2
	}
	if err != nil {
		env.fail(err.Error())
		return nil, 1
	}
	app, err := coord.New(coord.Options{
		Owner:      p.Username,
		Store:      env.Todos,
		PageSize:   p.ItemsPerPage,
		MaxVisible: env.MaxVisible,
		Notifier:   n,
		Prefs:      env.Prefs,
		Clock:      env.Now,
		Logger:     env.Log,
	})
	if err != nil {
		env.fail(err.Error())
		return nil, 1
	}
	if err := app.Load(ctx); err != nil {
		return nil, 1
	}
	return app, 0
}

func (e *Env) console() notify.Notifier {
	return notify.Console{Out: e.Out, Err: e.Err}
}

func itemIndex(env *Env, app *coord.App, raw string) (string, int) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		env.fail("not a number: " + raw)
		return "", 2
	}
	it, ok := app.ItemAt(n)
	if !ok {
		env.fail(fmt.Sprintf("index out of range: have %d, got %d", app.Stats().Total, n))
		fmt.Fprintln(env.Err, ui.MutedStyle.Render("Hint: run `tada ls -plain` to see valid indexes"))
		return "", 2
	}
	return it.ID, 0
}

func doList(ctx context.Context, env *Env, a []string) int {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.SetOutput(env.Err)
	plain := fs.Bool("plain", false, "print one page instead of the interactive list")
	page := fs.Int("page", 1, "page to print with -plain")
	if err := fs.Parse(a); err != nil {
		return 2
	}

	if !*plain && env.TUI != nil {
		q := notify.NewQueue(env.Now)
		app, code := openApp(ctx, env, q)
		if code != 0 {
			// The list never opened, so nothing will render q.
			for _, t := range q.Active(env.Now()) {
				env.console().Notify(t.Message, t.Kind)
			}
			return code
		}
		if err := env.TUI(ctx, app, q); err != nil {
			env.fail("tui: " + err.Error())
			return 1
		}
		return 0
	}

	app, code := openApp(ctx, env, env.console())
	if code != 0 {
		return code
	}
	app.Navigate(paging.PageNumber(*page))
	ui.Panel(env.Out, pageLines(app.Owner(), app.View(), env.Now()))
	return 0
}

func pageLines(user string, v coord.Page, now time.Time) []string {
	lines := []string{
		ui.Header(user, v.Stats),
		ui.MutedStyle.Render(ui.ProgressBar(v.Stats.Done, v.Stats.Total, 28)),
		"",
	}
	if v.Empty {
		lines = append(lines, ui.MutedStyle.Render("No to-dos yet. Add the first one!"))
		return lines
	}
	for _, r := range v.Rows {
		lines = append(lines, ui.ItemLine(r.Index, r.Item, r.Done, now))
	}
	if len(v.Buttons) > 0 {
		lines = append(lines, "", ui.PageButtons(v.Buttons))
	}
	lines = append(lines, "", ui.MutedStyle.Render(fmt.Sprintf("page %d/%d · %d per page", v.Cursor.Page, v.PageCount, v.Cursor.PageSize)))
	return lines
}

func doAdd(ctx context.Context, env *Env, text string) int {
	app, code := openApp(ctx, env, env.console())
	if code != 0 {
		return code
	}
	_, err := app.CreateTodo(ctx, text)
	return exitFor(err)
}

func doSetDone(ctx context.Context, env *Env, raw string, done bool) int {
	app, code := openApp(ctx, env, env.console())
	if code != 0 {
		return code
	}
	id, code := itemIndex(env, app, raw)
	if code != 0 {
		return code
	}
	if err := app.ToggleDone(ctx, id, done); err != nil {
		return exitFor(err)
	}
	if done {
		env.ok("marked done")
	} else {
		env.ok("marked not done")
	}
	return 0
}

func doEdit(ctx context.Context, env *Env, raw, text string) int {
	app, code := openApp(ctx, env, env.console())
	if code != 0 {
		return code
	}
	id, code := itemIndex(env, app, raw)
	if code != 0 {
		return code
	}
	if _, err := app.EditTodo(ctx, id, ""); err != nil {
		return exitFor(err)
	}
	_, err := app.EditTodo(ctx, id, text)
	return exitFor(err)
}

func doRemove(ctx context.Context, env *Env, a []string) int {
	fs := flag.NewFlagSet("rm", flag.ContinueOnError)
	fs.SetOutput(env.Err)
	yes := fs.Bool("y", false, "do not ask for confirmation")
	if err := fs.Parse(a); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		env.fail("usage: tada rm [-y] <index>")
		return 2
	}
	app, code := openApp(ctx, env, env.console())
	if code != 0 {
		return code
	}
	id, code := itemIndex(env, app, fs.Arg(0))
	if code != 0 {
		return code
	}
	confirm := coord.Confirmed
	if !*yes {
		confirm = coord.ConfirmFunc(env.ask)
	}
	err := app.DeleteTodo(ctx, id, confirm)
	if errors.Is(err, errs.ErrCancelled) {
		fmt.Fprintln(env.Out, ui.MutedStyle.Render("kept"))
		return 0
	}
	return exitFor(err)
}

// ask reads a y/N answer.
func (e *Env) ask(prompt string) bool {
	fmt.Fprintf(e.Out, "%s [y/N] ", prompt)
	line, _ := e.reader().ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func doSettings(ctx context.Context, env *Env, raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		env.fail("settings: items per page must be a positive number: " + raw)
		return 2
	}
	p, err := env.Prefs.Load()
	if err != nil {
		env.fail(err.Error())
		return 1
	}
	if !p.LoggedIn() {
		if err := env.Prefs.SetItemsPerPage(n); err != nil {
			env.fail(err.Error())
			return 1
		}
		env.ok("settings saved")
		return 0
	}
	app, code := openApp(ctx, env, env.console())
	if code != 0 {
		return code
	}
	if app.Cursor().PageSize == n {
		fmt.Fprintln(env.Out, ui.MutedStyle.Render(fmt.Sprintf("already %d per page", n)))
		return 0
	}
	return exitFor(app.SetPageSize(n))
}
