package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/errs"
	"github.com/Makepad-fr/tada/internal/mockapi"
	"github.com/Makepad-fr/tada/internal/model"
)

func newBackend(t *testing.T) (*mockapi.Server, *httptest.Server) {
	t.Helper()
	api := mockapi.New(nil, "todo", "users")
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return api, srv
}

func ptr[T any](v T) *T { return &v }

func TestNewClient_RejectsRelativeURL(t *testing.T) {
	_, err := NewClient("/todo")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrValidation))
}

func TestTodos_CRUD(t *testing.T) {
	ctx := context.Background()
	_, srv := newBackend(t)
	store, err := NewTodos(srv.URL + "/todo/")
	require.NoError(t, err)

	created, err := store.Create(ctx, model.TodoItem{ID: "ignored", Owner: "alice", Text: "milk", LastEditedAt: "2026-10-14 09:30"})
	require.NoError(t, err)
	assert.Equal(t, "1", created.ID)
	assert.Equal(t, "alice", created.Owner)

	updated, err := store.Update(ctx, created.ID, model.TodoPatch{Done: ptr(true), LastEditedAt: "2026-10-14 09:31"})
	require.NoError(t, err)
	assert.True(t, updated.Done)
	assert.Equal(t, "milk", updated.Text, "partial update keeps text")
	assert.Equal(t, "2026-10-14 09:31", updated.LastEditedAt)

	items, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, store.Delete(ctx, created.ID))
	items, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestTodos_PatchDoneFalseIsSent(t *testing.T) {
	ctx := context.Background()
	api, srv := newBackend(t)
	ids := api.Seed("todo", mockapi.Record{"username": "bob", "text": "x", "done": true})
	store, err := NewTodos(srv.URL + "/todo")
	require.NoError(t, err)

	out, err := store.Update(ctx, ids[0], model.TodoPatch{Done: ptr(false)})
	require.NoError(t, err)
	assert.False(t, out.Done)
}

func TestTodos_MissingItemIsNotFoundAndTransport(t *testing.T) {
	ctx := context.Background()
	_, srv := newBackend(t)
	store, err := NewTodos(srv.URL + "/todo")
	require.NoError(t, err)

	err = store.Delete(ctx, "404")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
	assert.True(t, errors.Is(err, errs.ErrTransport))

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Code)
}

func TestTodos_ServerErrorIsTransportOnly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	store, err := NewTodos(srv.URL)
	require.NoError(t, err)

	_, err = store.List(context.Background())
	assert.True(t, errors.Is(err, errs.ErrTransport))
	assert.False(t, errors.Is(err, errs.ErrNotFound))
}

func TestTodos_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()
	store, err := NewTodos(base)
	require.NoError(t, err)

	_, err = store.List(context.Background())
	assert.True(t, errors.Is(err, errs.ErrTransport))
}

func TestTodos_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()
	store, err := NewTodos(srv.URL)
	require.NoError(t, err)

	_, err = store.List(context.Background())
	assert.True(t, errors.Is(err, errs.ErrTransport))
}

func TestUsers_CreateAndList(t *testing.T) {
	ctx := context.Background()
	_, srv := newBackend(t)
	users, err := NewUsers(srv.URL + "/users")
	require.NoError(t, err)

	u, err := users.CreateUser(ctx, model.User{Username: "alice", Password: "h", CreatedAt: "2026-10-14T09:30:00Z"})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)

	all, err := users.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "alice", all[0].Username)
}
