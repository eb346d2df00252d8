package coord

import (
	"context"

	"github.com/Makepad-fr/tada/internal/paging"
)

// Action is a user command. The set is closed: Create, Delete, Edit,
// CancelEdit, Toggle, Navigate, SetPageSize and Reload.
type Action interface {
	action()
}

// Create adds an item.
type Create struct{ Text string }

// Delete removes an item after Confirm approves.
type Delete struct {
	ID      string
	Confirm Confirmer
}

// Edit is one press of the edit button.
type Edit struct{ ID, Text string }

// CancelEdit closes an editor without saving.
type CancelEdit struct{ ID string }

// Toggle sets the done flag.
type Toggle struct {
	ID   string
	Done bool
}

// Navigate moves the cursor.
type Navigate struct{ Target paging.Target }

// SetPageSize changes the page size preference.
type SetPageSize struct{ Size int }

// Reload refreshes the snapshot.
type Reload struct{}

func (Create) action()      {}
func (Delete) action()      {}
func (Edit) action()        {}
func (CancelEdit) action()  {}
func (Toggle) action()      {}
func (Navigate) action()    {}
func (SetPageSize) action() {}
func (Reload) action()      {}

// Dispatch routes an action to its handler. The error has already been
// reported through the notifier; callers only need it for control flow.
func (a *App) Dispatch(ctx context.Context, act Action) error {
	switch x := act.(type) {
	case Create:
		_, err := a.CreateTodo(ctx, x.Text)
		return err
	case Delete:
		return a.DeleteTodo(ctx, x.ID, x.Confirm)
	case Edit:
		_, err := a.EditTodo(ctx, x.ID, x.Text)
		return err
	case CancelEdit:
		a.CancelEdit(x.ID)
		return nil
	case Toggle:
		return a.ToggleDone(ctx, x.ID, x.Done)
	case Navigate:
		a.Navigate(x.Target)
		return nil
	case SetPageSize:
		return a.SetPageSize(x.Size)
	case Reload:
		return a.Load(ctx)
	}
	return nil
}
