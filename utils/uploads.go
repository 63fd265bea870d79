package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureUploadDir creates the upload directory if it does not exist yet.
func EnsureUploadDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return nil
}

// SaveUpload writes blob to dir/name, replacing any file already stored under that name.
// name must already be sanitized.
func SaveUpload(dir, name string, blob []byte) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("unsafe upload name %q", name)
	}
	dst := filepath.Join(dir, name)
	tmp := dst + ".part"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("move upload: %w", err)
	}
	return dst, nil
}
