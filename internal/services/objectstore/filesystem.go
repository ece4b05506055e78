package objectstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// FilesystemStore keeps blobs under a root directory, one file per
// key. It is the default backend for single-node deployments.
type FilesystemStore struct {
	root string
}

func NewFilesystemStore(root string) (*FilesystemStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root %s: %w", root, err)
	}

	log.Info().Str("root", root).Msg("Filesystem object store initialized")
	return &FilesystemStore{root: root}, nil
}

// path maps a key onto the root directory, rejecting traversal outside it
func (s *FilesystemStore) path(key string) (string, error) {
	cleaned := filepath.Join(s.root, filepath.FromSlash(key))
	if !strings.HasPrefix(cleaned, filepath.Clean(s.root)+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid object key: %s", key)
	}
	return cleaned, nil
}

func (s *FilesystemStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create object directory: %w", err)
	}

	// Write to a temp file first so a crash never leaves a partial blob
	// behind the final key
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write object %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to finalize object %s: %w", key, err)
	}
	return nil
}

func (s *FilesystemStore) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	path, err := s.path(key)
	if err != nil {
		return nil, "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open object %s: %w", key, err)
	}

	// Content type is re-derived from the key's extension
	contentType := "image/jpeg"
	if filepath.Ext(path) == ".png" {
		contentType = "image/png"
	}
	return f, contentType, nil
}

func (s *FilesystemStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			// Already gone, concurrent deletes are tolerated
			return nil
		}
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}
