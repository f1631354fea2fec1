// Package storage provides the blob store used for uploaded media and
// assessment files. Models hold opaque references; the store maps them to
// bytes and public URLs.
package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"club-nexus/backend/config"
)

// Store persists uploaded blobs and resolves their public URLs.
type Store interface {
	// Save writes the blob under a generated reference within prefix.
	Save(prefix, filename string, r io.Reader) (ref string, err error)
	// URL resolves a stored reference to a public URL.
	URL(ref string) string
	// Remove deletes a stored blob. Missing blobs are not an error.
	Remove(ref string) error
}

// DiskStore is the local filesystem implementation.
type DiskStore struct {
	root    string
	baseURL string
}

// NewDiskStore creates the storage root if needed.
func NewDiskStore(cfg *config.StorageConfig) (*DiskStore, error) {
	if err := os.MkdirAll(cfg.Root, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage root: %w", err)
	}
	return &DiskStore{
		root:    cfg.Root,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}, nil
}

func (s *DiskStore) Save(prefix, filename string, r io.Reader) (string, error) {
	ext := filepath.Ext(filename)
	ref := path.Join(prefix, uuid.New().String()+ext)

	dst := filepath.Join(s.root, filepath.FromSlash(ref))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("creating blob dir: %w", err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("creating blob: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("writing blob: %w", err)
	}

	return ref, nil
}

func (s *DiskStore) URL(ref string) string {
	if ref == "" {
		return ""
	}
	return s.baseURL + "/" + ref
}

func (s *DiskStore) Remove(ref string) error {
	if ref == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(ref)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
