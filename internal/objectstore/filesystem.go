package objectstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileSystemStore writes uploads under a local root directory, typically
// served back by the HTTP server's static route. Used for single-host
// deployments without S3.
type FileSystemStore struct {
	root    string
	baseURL string
}

func NewFileSystemStore(root, baseURL string) (*FileSystemStore, error) {
	if root == "" {
		return nil, fmt.Errorf("filesystem object store requires fs_root to be set")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload root %s: %w", root, err)
	}
	return &FileSystemStore{
		root:    root,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (f *FileSystemStore) Upload(ctx context.Context, path, contentType string, r io.Reader) (string, error) {
	clean := filepath.Clean("/" + path)
	dest := filepath.Join(f.root, clean)

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	file, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, r); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	return f.baseURL + strings.ReplaceAll(clean, string(filepath.Separator), "/"), nil
}
