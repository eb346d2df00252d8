package remote

import (
	"context"
	"net/http"

	"github.com/Makepad-fr/tada/internal/model"
)

// UserStore is the remote users collection.
type UserStore interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, u model.User) (model.User, error)
}

// Users is the HTTP implementation of UserStore.
type Users struct {
	c *Client
}

var _ UserStore = (*Users)(nil)

// NewUsers returns a UserStore for the collection at base.
func NewUsers(base string, opts ...Option) (*Users, error) {
	c, err := NewClient(base, opts...)
	if err != nil {
		return nil, err
	}
	return &Users{c: c}, nil
}

func (s *Users) ListUsers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	if err := s.c.do(ctx, http.MethodGet, s.c.base, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Users) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	u.ID = ""
	var out model.User
	if err := s.c.do(ctx, http.MethodPost, s.c.base, u, &out); err != nil {
		return model.User{}, err
	}
	return out, nil
}
