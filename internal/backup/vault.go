// Package backup implements the copy-before-mutate vault. Snapshots
// are flat files or folders named <unix-timestamp>_<basename> inside a
// single vault directory; there is no index file, lookup is directory
// listing plus filename suffix matching.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/bachdx2812/ai-skills-aggregator/internal/apperr"
	"github.com/bachdx2812/ai-skills-aggregator/internal/types"
)

const retention = 7 * 24 * time.Hour

type Vault struct {
	dir string
}

// DefaultDir is the vault location under the platform data directory.
func DefaultDir() string {
	return filepath.Join(xdg.DataHome, "ai-skills-aggregator", "backups")
}

func New(dir string) *Vault {
	return &Vault{dir: dir}
}

// BackupFile snapshots a single file into the vault and returns the
// snapshot path.
func (v *Vault) BackupFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", apperr.NotFound("file not found: %s", path)
	}
	if info.IsDir() {
		return "", apperr.InvalidPath("not a file: %s", path)
	}

	backupPath, err := v.snapshotPath(path)
	if err != nil {
		return "", err
	}
	if err := copyFile(path, backupPath); err != nil {
		return "", apperr.IO("failed to copy backup", err)
	}
	return backupPath, nil
}

// BackupFolder snapshots a whole folder into the vault and returns the
// snapshot path.
func (v *Vault) BackupFolder(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", apperr.NotFound("folder not found: %s", path)
	}
	if !info.IsDir() {
		return "", apperr.InvalidPath("not a folder: %s", path)
	}

	backupPath, err := v.snapshotPath(path)
	if err != nil {
		return "", err
	}
	if err := copyTree(path, backupPath); err != nil {
		return "", apperr.IO("failed to copy backup", err)
	}
	return backupPath, nil
}

func (v *Vault) snapshotPath(source string) (string, error) {
	if err := os.MkdirAll(v.dir, 0755); err != nil {
		return "", apperr.IO("failed to create backup directory", err)
	}
	name := fmt.Sprintf("%d_%s", time.Now().Unix(), filepath.Base(source))
	return filepath.Join(v.dir, name), nil
}

// Restore copies a snapshot back onto the destination path, creating
// parent directories as needed. Folder snapshots are copied
// recursively.
func (v *Vault) Restore(backupPath, destPath string) error {
	info, err := os.Stat(backupPath)
	if err != nil {
		return apperr.NotFound("backup not found: %s", backupPath)
	}

	if parent := filepath.Dir(destPath); parent != "" {
		if err := os.MkdirAll(parent, 0755); err != nil {
			return apperr.IO("failed to create destination directory", err)
		}
	}

	if info.IsDir() {
		if err := copyTree(backupPath, destPath); err != nil {
			return apperr.IO("failed to restore backup", err)
		}
		return nil
	}
	if err := copyFile(backupPath, destPath); err != nil {
		return apperr.IO("failed to restore backup", err)
	}
	return nil
}

// ListBackups returns every snapshot whose stored name ends with the
// given original name, most recent first. The match is a suffix check,
// so snapshots of same-named artifacts from different locations are
// not distinguished.
func (v *Vault) ListBackups(originalName string) ([]types.BackupInfo, error) {
	entries, err := os.ReadDir(v.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []types.BackupInfo{}, nil
		}
		return nil, apperr.IO("failed to read backup directory", err)
	}

	backups := make([]types.BackupInfo, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, originalName) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, types.BackupInfo{
			Path:      filepath.Join(v.dir, name),
			Name:      name,
			Size:      info.Size(),
			CreatedAt: info.ModTime().Unix(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt > backups[j].CreatedAt
	})
	return backups, nil
}

// CleanupOldBackups removes every snapshot older than the retention
// window and returns the count removed. Individual removal failures
// are skipped, not fatal.
func (v *Vault) CleanupOldBackups() (int, error) {
	entries, err := os.ReadDir(v.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, apperr.IO("failed to read backup directory", err)
	}

	cutoff := time.Now().Add(-retention)
	deleted := 0
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if os.RemoveAll(filepath.Join(v.dir, entry.Name())) == nil {
			deleted++
		}
	}
	return deleted, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

func copyTree(src, dst string) error {
	if err := os.MkdirAll(dst, 0755); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := copyTree(srcPath, dstPath); err != nil {
				return err
			}
		} else if err := copyFile(srcPath, dstPath); err != nil {
			return err
		}
	}
	return nil
}
