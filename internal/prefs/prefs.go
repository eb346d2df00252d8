// Package prefs persists the session identity and the page size between
// runs in a small TOML file under ~/.tada.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/Makepad-fr/tada/internal/errs"
)

const (
	fileName = "prefs.toml"

	// DefaultItemsPerPage applies when nothing is stored.
	DefaultItemsPerPage = 5
)

// Prefs is the stored preference set.
type Prefs struct {
	Username     string `toml:"username"`
	UserID       string `toml:"user_id"`
	ItemsPerPage int    `toml:"items_per_page"`
}

// LoggedIn reports whether a session identity is stored.
func (p Prefs) LoggedIn() bool { return p.Username != "" && p.UserID != "" }

// DefaultPath is ~/.tada/prefs.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".tada", fileName), nil
}

// Store reads and writes one preference file.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore returns a store at path, or at DefaultPath when path is empty.
func NewStore(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &Store{path: path}, nil
}

// Path is the file location.
func (s *Store) Path() string { return s.path }

// Load returns the stored preferences; a missing file yields defaults.
func (s *Store) Load() (Prefs, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (Prefs, error) {
	p := Prefs{ItemsPerPage: DefaultItemsPerPage}
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return Prefs{}, fmt.Errorf("read prefs: %w", err)
	}
	if err := toml.Unmarshal(b, &p); err != nil {
		return Prefs{}, fmt.Errorf("parse prefs: %w", err)
	}
	if p.ItemsPerPage < 1 {
		p.ItemsPerPage = DefaultItemsPerPage
	}
	return p, nil
}

// Save writes p with owner-only permissions.
func (s *Store) Save(p Prefs) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(p)
}

func (s *Store) save(p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(p); err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(sb.String()), 0o600); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func (s *Store) update(fn func(*Prefs)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.load()
	if err != nil {
		return err
	}
	fn(&p)
	return s.save(p)
}

// SetUser stores the identity of a logged-in user.
func (s *Store) SetUser(username, id string) error {
	if username == "" || id == "" {
		return fmt.Errorf("%w: empty session identity", errs.ErrValidation)
	}
	return s.update(func(p *Prefs) { p.Username, p.UserID = username, id })
}

// ClearUser forgets the session identity and keeps the page size.
func (s *Store) ClearUser() error {
	return s.update(func(p *Prefs) { p.Username, p.UserID = "", "" })
}

// SetItemsPerPage stores the page size.
func (s *Store) SetItemsPerPage(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: items per page %d", errs.ErrValidation, n)
	}
	return s.update(func(p *Prefs) { p.ItemsPerPage = n })
}

// Session returns the stored identity or errs.ErrNotLoggedIn.
func (s *Store) Session() (Prefs, error) {
	p, err := s.Load()
	if err != nil {
		return Prefs{}, err
	}
	if !p.LoggedIn() {
		return p, errs.ErrNotLoggedIn
	}
	return p, nil
}
