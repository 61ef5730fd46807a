package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// LocalStore keeps files on disk under a root directory.
type LocalStore struct {
	root string
}

// NewLocalStore creates the root directory if it's missing.
func NewLocalStore(root string) (*LocalStore, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("storage root path is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create storage root")
	}
	return &LocalStore{root: abs}, nil
}

func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) Exists(_ context.Context, key string) (bool, error) {
	p, err := s.resolve(key)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(p)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.WithStack(err)
	}
	return true, nil
}

func (s *LocalStore) MakeDirectory(_ context.Context, key string) error {
	p, err := s.resolve(key)
	if err != nil {
		return err
	}
	return errors.WithStack(os.MkdirAll(p, 0o755))
}

func (s *LocalStore) Store(_ context.Context, r io.Reader, _ int64, key string) (string, error) {
	p, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", errors.WithStack(err)
	}

	// Files are written next to their final path and renamed into place, so a
	// partially written file is never visible under key.
	tmp := p + "." + uuid.New().String() + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return "", errors.WithStack(err)
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		_ = os.Remove(tmp)
		return "", errors.Wrapf(err, "failed to write %s", key)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", errors.WithStack(err)
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return "", errors.WithStack(err)
	}
	return key, nil
}

func (s *LocalStore) Delete(_ context.Context, key string) error {
	p, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return errors.WithStack(err)
	}
	return nil
}

// resolve maps key onto the filesystem and refuses keys that would land
// outside of the root.
func (s *LocalStore) resolve(key string) (string, error) {
	p := filepath.Join(s.root, filepath.FromSlash(key))
	rel, err := filepath.Rel(s.root, p)
	if err != nil {
		return "", errors.WithStack(err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Errorf("storage key %q escapes the storage root", key)
	}
	return p, nil
}
