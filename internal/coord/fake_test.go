package coord

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/remote"
)

// memStore is an in-memory TodoStore with per-operation failure injection.
type memStore struct {
	mu     sync.Mutex
	items  []model.TodoItem
	nextID int

	listErr, createErr, updateErr, deleteErr error
	onUpdate                                 func(id string)

	lists, creates, updates, deletes int
	lastPatch                        model.TodoPatch
}

var _ remote.TodoStore = (*memStore)(nil)

func newMemStore(items ...model.TodoItem) *memStore {
	s := &memStore{nextID: 1}
	for _, it := range items {
		it.ID = strconv.Itoa(s.nextID)
		s.nextID++
		s.items = append(s.items, it)
	}
	return s
}

func (s *memStore) List(context.Context) ([]model.TodoItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists++
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]model.TodoItem(nil), s.items...), nil
}

func (s *memStore) Create(_ context.Context, it model.TodoItem) (model.TodoItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++
	if s.createErr != nil {
		return model.TodoItem{}, s.createErr
	}
	it.ID = strconv.Itoa(s.nextID)
	s.nextID++
	s.items = append(s.items, it)
	return it, nil
}

func (s *memStore) Update(_ context.Context, id string, p model.TodoPatch) (model.TodoItem, error) {
	if s.onUpdate != nil {
		s.onUpdate(id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates++
	s.lastPatch = p
	if s.updateErr != nil {
		return model.TodoItem{}, s.updateErr
	}
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		if p.Text != nil {
			s.items[i].Text = *p.Text
		}
		if p.Done != nil {
			s.items[i].Done = *p.Done
		}
		s.items[i].LastEditedAt = p.LastEditedAt
		return s.items[i], nil
	}
	return model.TodoItem{}, &remote.StatusError{Method: http.MethodPut, URL: id, Code: http.StatusNotFound}
}

func (s *memStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes++
	if s.deleteErr != nil {
		return s.deleteErr
	}
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return &remote.StatusError{Method: http.MethodDelete, URL: id, Code: http.StatusNotFound}
}

type fakePrefs struct {
	saved []int
	err   error
}

func (p *fakePrefs) SetItemsPerPage(n int) error {
	if p.err != nil {
		return p.err
	}
	p.saved = append(p.saved, n)
	return nil
}

func todosFor(owner string, n int) []model.TodoItem {
	out := make([]model.TodoItem, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, model.TodoItem{Owner: owner, Text: owner + " " + strconv.Itoa(i)})
	}
	return out
}
