// Package snapshot persists widget configurations as whole JSON documents.
// Every Save replaces the file atomically so a reload never observes a mix
// of old and new fields.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"loramgr/internal/common/fsutil"
)

var validID = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// invalidIDError reports a widget id that cannot be used as a file name.
type invalidIDError struct{ id string }

func (e invalidIDError) Error() string { return "invalid widget id: " + e.id }

// IsInvalidID reports whether err was caused by a malformed widget id.
func IsInvalidID(err error) bool {
	var e invalidIDError
	return errors.As(err, &e)
}

// Store keeps one JSON file per widget under a directory.
type Store struct {
	dir string
}

// New returns a store rooted at dir. A leading '~' is expanded.
func New(dir string) (*Store, error) {
	d, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	if d == "" {
		return nil, fmt.Errorf("snapshot: empty state dir")
	}
	return &Store{dir: d}, nil
}

// Dir returns the directory holding the snapshots.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(id string) (string, error) {
	if !validID.MatchString(id) {
		return "", invalidIDError{id: id}
	}
	return filepath.Join(s.dir, id+".json"), nil
}

// Save writes v as the complete snapshot for id.
func (s *Store) Save(id string, v any) error {
	p, err := s.path(id)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	data = append(data, '\n')
	if err := fsutil.WriteFileAtomic(p, data, 0o644); err != nil {
		return fmt.Errorf("save snapshot %s: %w", id, err)
	}
	return nil
}

// Load decodes the snapshot for id into v. It reports false when no
// snapshot exists.
func (s *Store) Load(id string, v any) (bool, error) {
	p, err := s.path(id)
	if err != nil {
		return false, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read snapshot: %w", err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("decode snapshot %s: %w", id, err)
	}
	return true, nil
}

// Delete removes the snapshot for id. Missing snapshots are not an error.
func (s *Store) Delete(id string) error {
	p, err := s.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}
