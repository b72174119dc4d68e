// Package session holds the client's authentication token and persists it
// across restarts in a single named slot on disk.
package session

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const tokenFileName = "token"

// Store owns the session token. Persistence failures degrade to
// in-memory-only operation: the token held in memory stays authoritative for
// the running process and no error reaches the caller.
type Store struct {
	mu       sync.RWMutex
	path     string
	token    string
	hasToken bool
	loading  bool
}

// NewStore creates a store persisting to the given file path.
func NewStore(path string) *Store {
	return &Store{path: path, loading: true}
}

// DefaultPath returns the conventional token slot location under the user
// config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "staffdesk", tokenFileName), nil
}

// Restore reads the persisted token. A missing or unreadable slot restores
// to unauthenticated; read failures never surface. Loading latches to false
// when the attempt finishes and never flips back.
func (s *Store) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()

	defer func() { s.loading = false }()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("failed to read persisted session token", "path", s.path, "error", err)
		}
		return
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return
	}
	s.token = token
	s.hasToken = true
}

// Login sets the current token and attempts to persist it. The in-memory
// token is authoritative regardless of persistence outcome.
func (s *Store) Login(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.hasToken = true

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		slog.Warn("failed to create session directory", "path", s.path, "error", err)
		return
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		slog.Warn("failed to persist session token", "path", s.path, "error", err)
	}
}

// Logout clears the current token and attempts to remove the persisted slot.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.hasToken = false

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to remove persisted session token", "path", s.path, "error", err)
	}
}

// Token returns the current token, if any.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.hasToken
}

// Loading reports whether the initial restore is still pending.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}
