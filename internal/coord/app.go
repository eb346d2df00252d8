// Package coord sequences to-do mutations against the remote store and keeps
// the cached snapshot, the page cursor and the per-item edit state in step.
//
// Every mutation is confirmed by the store before anything local changes,
// then the snapshot is refreshed. A failed remote call leaves the snapshot
// and the cursor as they were.
package coord

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Makepad-fr/tada/internal/cache"
	"github.com/Makepad-fr/tada/internal/errs"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/notify"
	"github.com/Makepad-fr/tada/internal/paging"
	"github.com/Makepad-fr/tada/internal/remote"
)

// EditState is the edit affordance of one item.
type EditState int

const (
	Viewing EditState = iota
	Editing
)

func (s EditState) String() string {
	if s == Editing {
		return "editing"
	}
	return "viewing"
}

// DefaultPageSize is used when no preference is stored.
const DefaultPageSize = 5

// PageSizeStore persists the page size preference.
type PageSizeStore interface {
	SetItemsPerPage(n int) error
}

// Options configures an App.
type Options struct {
	Owner      string
	Store      remote.TodoStore
	PageSize   int
	MaxVisible int

	Notifier  notify.Notifier
	Refresher Refresher
	Prefs     PageSizeStore
	Clock     func() time.Time
	Logger    *zap.Logger
}

// App is the state of one logged-in session.
type App struct {
	owner      string
	store      remote.TodoStore
	cache      *cache.Cache
	refresher  Refresher
	notifier   notify.Notifier
	prefs      PageSizeStore
	now        func() time.Time
	log        *zap.Logger
	maxVisible int

	mu      sync.Mutex
	cursor  paging.Cursor
	editing map[string]EditState
	shown   map[string]overlay // checkbox value while a toggle is in flight
	seq     uint64
}

// overlay is the value one ToggleDone call shows; seq tells calls apart.
type overlay struct {
	done bool
	seq  uint64
}

// New builds the session state. Owner and Store are required.
func New(opts Options) (*App, error) {
	if opts.Owner == "" {
		return nil, errs.ErrNotLoggedIn
	}
	if opts.Store == nil {
		return nil, errors.New("coord: nil store")
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Func(func(string, notify.Kind) {})
	}
	if opts.Refresher == nil {
		opts.Refresher = FullReload{}
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.PageSize < 1 {
		opts.PageSize = DefaultPageSize
	}
	if opts.MaxVisible < 1 {
		opts.MaxVisible = paging.DefaultMaxVisible
	}
	return &App{
		owner:      opts.Owner,
		store:      opts.Store,
		cache:      cache.New(opts.Store),
		refresher:  opts.Refresher,
		notifier:   opts.Notifier,
		prefs:      opts.Prefs,
		now:        opts.Clock,
		log:        opts.Logger.With(zap.String("owner", opts.Owner)),
		maxVisible: opts.MaxVisible,
		cursor:     paging.NewCursor(opts.PageSize),
		editing:    map[string]EditState{},
		shown:      map[string]overlay{},
	}, nil
}

// Owner is the logged-in username.
func (a *App) Owner() string { return a.owner }

// Cursor returns the current page cursor.
func (a *App) Cursor() paging.Cursor {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cursor
}

// Stats summarizes the cached snapshot.
func (a *App) Stats() cache.Stats { return a.cache.Stats() }

// Items returns the whole cached snapshot in store order.
func (a *App) Items() []model.TodoItem { return a.cache.Items() }

// ItemAt returns the n-th (1-based) item of the snapshot.
func (a *App) ItemAt(n int) (model.TodoItem, bool) {
	items := a.cache.Items()
	if n < 1 || n > len(items) {
		return model.TodoItem{}, false
	}
	return items[n-1], true
}

// Load refreshes the snapshot, at startup or on demand.
func (a *App) Load(ctx context.Context) error {
	return a.refresh(ctx)
}

// Navigate moves the cursor. Prev on the first page and Next on the last do nothing.
func (a *App) Navigate(t paging.Target) int {
	total := a.cache.Len()
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cursor.Page = paging.Navigate(t, a.cursor.Page, a.cursor.Pages(total))
	return a.cursor.Page
}

// SetPageSize persists a new page size and goes back to page 1.
// Setting the current size again is a no-op.
func (a *App) SetPageSize(n int) error {
	if n < 1 {
		a.notifier.Notify("Items per page must be positive", notify.Warning)
		return fmt.Errorf("%w: page size %d", errs.ErrValidation, n)
	}
	a.mu.Lock()
	same := a.cursor.PageSize == n
	a.mu.Unlock()
	if same {
		return nil
	}
	if a.prefs != nil {
		if err := a.prefs.SetItemsPerPage(n); err != nil {
			return a.fail("save settings", "Failed to save settings", err)
		}
	}
	a.mu.Lock()
	a.cursor.PageSize = n
	a.cursor.Reset()
	a.mu.Unlock()
	a.log.Info("page size changed", zap.Int("page_size", n))
	a.notifier.Notify("Settings saved", notify.Success)
	return nil
}

// Row is one rendered item of the current page.
type Row struct {
	Index int // 1-based position in the whole snapshot
	Item  model.TodoItem
	Done  bool // what the checkbox shows
	State EditState
}

// Page is everything a renderer needs for the current cursor.
type Page struct {
	Rows      []Row
	Buttons   []paging.Button
	Stats     cache.Stats
	Cursor    paging.Cursor
	PageCount int
	Empty     bool
}

// View renders the current page from the snapshot.
func (a *App) View() Page {
	items := a.cache.Items()
	a.mu.Lock()
	defer a.mu.Unlock()

	a.cursor.Clamp(len(items))
	count := a.cursor.Pages(len(items))
	visible := paging.Slice(items, a.cursor.Page, a.cursor.PageSize)
	offset := (a.cursor.Page - 1) * a.cursor.PageSize

	rows := make([]Row, 0, len(visible))
	for i, it := range visible {
		done := it.Done
		if v, ok := a.shown[it.ID]; ok {
			done = v.done
		}
		rows = append(rows, Row{Index: offset + i + 1, Item: it, Done: done, State: a.editing[it.ID]})
	}

	return Page{
		Rows:      rows,
		Buttons:   paging.BuildButtons(a.cursor.Page, count, a.maxVisible),
		Stats:     cache.Count(items),
		Cursor:    a.cursor,
		PageCount: count,
		Empty:     len(items) == 0,
	}
}

// refresh reloads the snapshot through the strategy and pulls the cursor
// back into range if the list shrank.
func (a *App) refresh(ctx context.Context) error {
	if err := a.refresher.Refresh(ctx, a.cache, a.owner); err != nil {
		return a.fail("load", "Failed to load to-dos", err)
	}
	total := a.cache.Len()
	a.mu.Lock()
	before := a.cursor.Page
	a.cursor.Clamp(total)
	after := a.cursor.Page
	a.mu.Unlock()
	if before != after {
		a.log.Debug("cursor clamped", zap.Int("from", before), zap.Int("to", after))
	}
	return nil
}

func (a *App) fail(op, msg string, err error) error {
	a.log.Warn(op+" failed", zap.Error(err))
	a.notifier.Notify(msg, notify.Error)
	return fmt.Errorf("%s: %w", op, err)
}

func (a *App) stamp() string { return model.Timestamp(a.now()) }
