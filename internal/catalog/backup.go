package catalog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// BackupSuffix is appended to the catalog path to name its backup.
const BackupSuffix = ".bak"

// Backup copies the catalog file byte-for-byte to path+".bak", replacing any
// earlier backup, and returns the backup path.
func Backup(path string) (string, error) {
	dst := path + BackupSuffix
	if err := copyFile(path, dst); err != nil {
		return "", fmt.Errorf("backing up catalog: %w", err)
	}
	slog.Info("catalog backed up", "path", path, "backup", dst)
	return dst, nil
}

// copyFile copies a file from src to dst, keeping the source permissions.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return fmt.Errorf("reading source info: %w", err)
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}

	if err := dstFile.Sync(); err != nil {
		return fmt.Errorf("syncing destination: %w", err)
	}

	return dstFile.Close()
}
