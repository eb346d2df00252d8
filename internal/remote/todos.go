package remote

import (
	"context"
	"net/http"

	"github.com/Makepad-fr/tada/internal/model"
)

// TodoStore is the remote to-do collection.
type TodoStore interface {
	// List fetches the whole collection; it is not filtered by owner.
	List(ctx context.Context) ([]model.TodoItem, error)
	// Create stores item and returns it with the id assigned by the store.
	Create(ctx context.Context, item model.TodoItem) (model.TodoItem, error)
	// Update applies patch to the item with the given id.
	Update(ctx context.Context, id string, patch model.TodoPatch) (model.TodoItem, error)
	// Delete removes the item with the given id.
	Delete(ctx context.Context, id string) error
}

// Todos is the HTTP implementation of TodoStore.
type Todos struct {
	c *Client
}

var _ TodoStore = (*Todos)(nil)

// NewTodos returns a TodoStore for the collection at base.
func NewTodos(base string, opts ...Option) (*Todos, error) {
	c, err := NewClient(base, opts...)
	if err != nil {
		return nil, err
	}
	return &Todos{c: c}, nil
}

func (t *Todos) List(ctx context.Context) ([]model.TodoItem, error) {
	var out []model.TodoItem
	if err := t.c.do(ctx, http.MethodGet, t.c.base, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *Todos) Create(ctx context.Context, item model.TodoItem) (model.TodoItem, error) {
	item.ID = ""
	var out model.TodoItem
	if err := t.c.do(ctx, http.MethodPost, t.c.base, item, &out); err != nil {
		return model.TodoItem{}, err
	}
	return out, nil
}

func (t *Todos) Update(ctx context.Context, id string, patch model.TodoPatch) (model.TodoItem, error) {
	var out model.TodoItem
	if err := t.c.do(ctx, http.MethodPut, t.c.itemURL(id), patch, &out); err != nil {
		return model.TodoItem{}, err
	}
	return out, nil
}

func (t *Todos) Delete(ctx context.Context, id string) error {
	return t.c.do(ctx, http.MethodDelete, t.c.itemURL(id), nil, nil)
}
