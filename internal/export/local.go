package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalSink writes exports under a base directory.
type LocalSink struct {
	BaseDir string
}

func NewLocalSink(baseDir string) *LocalSink {
	return &LocalSink{BaseDir: baseDir}
}

func (s *LocalSink) Save(_ context.Context, subDir, name string, r io.Reader) (string, error) {
	dir := filepath.Join(s.BaseDir, filepath.FromSlash(subDir))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	fullPath := filepath.Join(dir, name)
	out, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", fullPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, r); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", fullPath, err)
	}
	return joinKey(subDir, name), nil
}

func (s *LocalSink) Delete(_ context.Context, key string) error {
	fullPath := filepath.Join(s.BaseDir, filepath.FromSlash(key))
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file %s: %w", fullPath, err)
	}
	return nil
}

// Location is the absolute path of key.
func (s *LocalSink) Location(_ context.Context, key string) (string, error) {
	return filepath.Abs(filepath.Join(s.BaseDir, filepath.FromSlash(key)))
}
