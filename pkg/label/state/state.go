// Package state persists client settings across restarts: theme
// preference, the remembered user, and the cart. Values live in one
// JSON file keyed the way the web client keyed its local storage.
// Reads are validated; anything missing, corrupt, or out of range is
// silently replaced by its default rather than surfaced as an error.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/borex256/century-music-empire/pkg/core/types"
)

// Theme is the display preference. Dark is the default.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Storage keys, matching the client's local storage names.
const (
	keyTheme = "cme_theme"
	keyUser  = "cme_user"
	keyCart  = "cme_cart"
)

type payload struct {
	Theme Theme           `json:"cme_theme,omitempty"`
	User  *types.User     `json:"cme_user,omitempty"`
	Cart  json.RawMessage `json:"cme_cart,omitempty"`
}

// Store is a file-backed settings store. Every mutation writes the
// file; loads never fail on bad content. Safe for concurrent use.
type Store struct {
	path string

	mu   sync.Mutex
	data payload
}

// Open loads settings from path, creating parent directories as
// needed. A missing or unreadable file yields defaults.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("state: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("state: create settings dir: %w", err)
	}

	s := &Store{path: path}
	s.data = load(path)
	return s, nil
}

// load reads and validates the settings file. Corrupt files and
// invalid values degrade to defaults, never to errors.
func load(path string) payload {
	var p payload
	raw, err := os.ReadFile(path)
	if err != nil {
		return payload{}
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return payload{}
	}

	if p.Theme != ThemeDark && p.Theme != ThemeLight {
		p.Theme = ""
	}
	if p.User != nil && (!p.User.IsLoggedIn || p.User.Email == "") {
		p.User = nil
	}
	if len(p.Cart) > 0 && !json.Valid(p.Cart) {
		p.Cart = nil
	}
	return p
}

// save writes the settings file. Called with the lock held.
func (s *Store) save() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("state: encode settings: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("state: write settings: %w", err)
	}
	return nil
}

// Theme returns the persisted theme, defaulting to dark.
func (s *Store) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.Theme == ThemeLight {
		return ThemeLight
	}
	return ThemeDark
}

// SetTheme persists the theme preference.
func (s *Store) SetTheme(theme Theme) error {
	if theme != ThemeDark && theme != ThemeLight {
		return fmt.Errorf("state: unknown theme %q", theme)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Theme = theme
	return s.save()
}

// User returns the remembered user, if one was persisted.
func (s *Store) User() (types.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.User == nil {
		return types.User{}, false
	}
	return *s.data.User, true
}

// RememberUser persists a logged-in user.
func (s *Store) RememberUser(user types.User) error {
	if !user.IsLoggedIn || user.Email == "" {
		return errors.New("state: refusing to remember a logged-out user")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := user
	s.data.User = &u
	return s.save()
}

// ForgetUser removes the remembered user.
func (s *Store) ForgetUser() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.User = nil
	return s.save()
}

// Cart returns the persisted cart lines as raw JSON, or nil when none
// were saved.
func (s *Store) Cart() json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(json.RawMessage(nil), s.data.Cart...)
}

// SaveCart persists the cart lines. A nil or empty value clears them.
func (s *Store) SaveCart(cart json.RawMessage) error {
	if len(cart) > 0 && !json.Valid(cart) {
		return errors.New("state: cart payload is not valid JSON")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Cart = append(json.RawMessage(nil), cart...)
	return s.save()
}
