package coord

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Makepad-fr/tada/internal/errs"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/notify"
)

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Confirmed approves without asking, for callers that already asked.
var Confirmed Confirmer = ConfirmFunc(func(string) bool { return true })

// DeletePrompt is the question put to the Confirmer before a delete.
const DeletePrompt = "Delete this to-do?"

// CreateTodo stores a new, not done item and goes back to page 1.
func (a *App) CreateTodo(ctx context.Context, text string) (model.TodoItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		a.notifier.Notify("Please enter some text", notify.Warning)
		return model.TodoItem{}, fmt.Errorf("%w: empty text", errs.ErrValidation)
	}
	created, err := a.store.Create(ctx, model.TodoItem{
		Owner:        a.owner,
		Text:         text,
		Done:         false,
		LastEditedAt: a.stamp(),
	})
	if err != nil {
		return model.TodoItem{}, a.fail("create", "Failed to create the to-do", err)
	}
	a.log.Info("todo created", zap.String("id", created.ID))

	a.mu.Lock()
	a.cursor.Reset()
	a.mu.Unlock()
	if err := a.refresh(ctx); err != nil {
		return created, err
	}
	a.notifier.Notify("To-do created", notify.Success)
	return created, nil
}

// DeleteTodo removes an item once c approves. A nil Confirmer approves.
// If the list loses its last page the cursor moves to the new last page.
func (a *App) DeleteTodo(ctx context.Context, id string, c Confirmer) error {
	if c != nil && !c.Confirm(DeletePrompt) {
		return errs.ErrCancelled
	}
	if err := a.store.Delete(ctx, id); err != nil {
		return a.fail("delete", "Failed to delete the to-do", err)
	}
	a.log.Info("todo deleted", zap.String("id", id))

	a.mu.Lock()
	delete(a.editing, id)
	delete(a.shown, id)
	a.mu.Unlock()
	if err := a.refresh(ctx); err != nil {
		return err
	}
	a.notifier.Notify("To-do deleted", notify.Success)
	return nil
}

// EditState reports whether id is being edited.
func (a *App) EditState(id string) EditState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.editing[id]
}

// EditTodo is the two-step edit button: the first call opens the item for
// editing, the second saves text. It returns the state the item is left in.
func (a *App) EditTodo(ctx context.Context, id, text string) (EditState, error) {
	if a.EditState(id) == Viewing {
		if err := a.BeginEdit(id); err != nil {
			return Viewing, err
		}
		return Editing, nil
	}
	if err := a.CommitEdit(ctx, id, text); err != nil {
		return a.EditState(id), err
	}
	return Viewing, nil
}

// BeginEdit opens a cached item for editing. Several items may be open at once.
func (a *App) BeginEdit(id string) error {
	if _, ok := a.cache.Get(id); !ok {
		return a.fail("edit", "This to-do no longer exists", fmt.Errorf("%w: item %s", errs.ErrNotFound, id))
	}
	a.mu.Lock()
	a.editing[id] = Editing
	a.mu.Unlock()
	return nil
}

// CancelEdit closes the editor without saving.
func (a *App) CancelEdit(id string) {
	a.mu.Lock()
	delete(a.editing, id)
	a.mu.Unlock()
}

// CommitEdit saves new text for an item being edited. On failure the item
// stays open so the user can retry; the cursor is never moved.
func (a *App) CommitEdit(ctx context.Context, id, text string) error {
	if a.EditState(id) != Editing {
		return a.fail("update", "This to-do is not being edited", fmt.Errorf("%w: item %s", errs.ErrNotEditing, id))
	}
	text = strings.TrimSpace(text)
	if text == "" {
		a.notifier.Notify("Please enter some text", notify.Warning)
		return fmt.Errorf("%w: empty text", errs.ErrValidation)
	}
	if _, err := a.store.Update(ctx, id, model.TodoPatch{Text: &text, LastEditedAt: a.stamp()}); err != nil {
		return a.fail("update", "Failed to update the to-do", err)
	}
	a.log.Info("todo updated", zap.String("id", id))

	a.CancelEdit(id)
	if err := a.refresh(ctx); err != nil {
		return err
	}
	a.notifier.Notify("To-do updated", notify.Success)
	return nil
}

// ToggleDone sets the done flag. The checkbox shows done while the call is
// in flight and falls back to the cached value if it fails.
func (a *App) ToggleDone(ctx context.Context, id string, done bool) error {
	a.mu.Lock()
	a.seq++
	mine := overlay{done: done, seq: a.seq}
	a.shown[id] = mine
	a.mu.Unlock()
	defer func() {
		a.mu.Lock()
		if a.shown[id] == mine {
			delete(a.shown, id)
		}
		a.mu.Unlock()
	}()

	if _, err := a.store.Update(ctx, id, model.TodoPatch{Done: &done, LastEditedAt: a.stamp()}); err != nil {
		return a.fail("toggle", "Failed to update the status", err)
	}
	a.log.Info("todo toggled", zap.String("id", id), zap.Bool("done", done))
	return a.refresh(ctx)
}

// DisplayDone is what the checkbox of id shows right now.
func (a *App) DisplayDone(id string) bool {
	a.mu.Lock()
	v, ok := a.shown[id]
	a.mu.Unlock()
	if ok {
		return v.done
	}
	it, _ := a.cache.Get(id)
	return it.Done
}
