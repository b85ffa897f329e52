// Package localstore persists the session ({token, user}) as a JSON file,
// the equivalent of the browser's persistent key-value storage. The file
// survives restarts and is removed only by an explicit Clear.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"atlas_travel/internal/domain"
)

type Store struct {
	path string
}

func New(path string) *Store { return &Store{path: path} }

var _ domain.SessionStore = (*Store)(nil)

// Load reads the persisted session. ok is false when none is stored.
func (s *Store) Load() (domain.Session, bool, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.Session{}, false, nil
	}
	if err != nil {
		return domain.Session{}, false, fmt.Errorf("localstore: read: %w", err)
	}
	var sess domain.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		// Corrupt file: treat as no session rather than wedging login.
		return domain.Session{}, false, nil
	}
	if sess.Token == "" {
		return domain.Session{}, false, nil
	}
	return sess, true, nil
}

// Save writes atomically via a temp file rename. The file is owner-only
// since it holds a credential.
func (s *Store) Save(sess domain.Session) error {
	b, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("localstore: mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("localstore: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
