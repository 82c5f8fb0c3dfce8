package localfs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidPath = errors.New("invalid attachment path")

// Upload carries attachment bytes from the HTTP layer into the store.
type Upload struct {
	Filename string
	Content  io.Reader
}

// Store persists attachments on local disk under
// {ownerID}/{kind}/{uuid}_{filename} and hands out the relative path for
// embedding in the owning record.
type Store struct {
	basePath string
}

func NewStore(basePath string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &Store{basePath: basePath}, nil
}

// Save writes the upload and returns its relative path. The generated name
// keeps the original filename for download friendliness.
func (s *Store) Save(ownerID uuid.UUID, kind string, upload Upload) (string, error) {
	dir := filepath.Join(s.basePath, ownerID.String(), kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create attachment directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s", uuid.New(), filepath.Base(upload.Filename))
	fullPath := filepath.Join(dir, name)

	f, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create attachment file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, upload.Content); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write attachment: %w", err)
	}

	return filepath.ToSlash(filepath.Join(ownerID.String(), kind, name)), nil
}

// Delete removes the attachment at the given relative path. Deleting a path
// that no longer exists is not an error.
func (s *Store) Delete(relPath string) error {
	if relPath == "" {
		return nil
	}

	fullPath, err := s.FullPath(relPath)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	return nil
}

// DeleteOwner removes every attachment stored for the owner. An owner with
// no attachments is a no-op.
func (s *Store) DeleteOwner(ownerID uuid.UUID) error {
	dir := filepath.Join(s.basePath, ownerID.String())
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to delete owner attachments: %w", err)
	}
	return nil
}

// FullPath resolves a stored relative path against the base directory,
// rejecting anything that would escape it.
func (s *Store) FullPath(relPath string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(relPath))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", ErrInvalidPath
	}
	return filepath.Join(s.basePath, clean), nil
}

// Exists reports whether an attachment is present at the relative path.
func (s *Store) Exists(relPath string) bool {
	fullPath, err := s.FullPath(relPath)
	if err != nil {
		return false
	}
	_, err = os.Stat(fullPath)
	return err == nil
}
