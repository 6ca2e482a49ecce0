// Package store implements create/read/update/delete, duplicate and
// rename for local skills and their files. Every destructive operation
// snapshots the target into the backup vault before touching disk, and
// content updates are written atomically (sibling temp file + rename)
// so a crash never leaves a half-written file under the real name.
package store

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bachdx2812/ai-skills-aggregator/internal/apperr"
	"github.com/bachdx2812/ai-skills-aggregator/internal/backup"
	"github.com/bachdx2812/ai-skills-aggregator/internal/template"
	"github.com/bachdx2812/ai-skills-aggregator/internal/types"
)

const (
	maxContentBytes = 1_000_000
	minNameLength   = 2
)

// ExportData is raw content plus a basename suitable for a save
// dialog.
type ExportData struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type Store struct {
	vault *backup.Vault
	home  string
}

func New(vault *backup.Vault, home string) *Store {
	return &Store{vault: vault, home: home}
}

// CreateSkill materializes a new folder skill with a single entry file
// named skill.<ext>. When content is empty the (agent, format) default
// template is used. The returned record is constructed from the known
// inputs, not re-scanned from disk.
func (s *Store) CreateSkill(name, description string, tags []string, agent types.Agent, format types.Format, content string) (types.Skill, error) {
	if len(name) < minNameLength {
		return types.Skill{}, apperr.InvalidPath("skill name must be at least %d characters", minNameLength)
	}

	folder := filepath.Join(agent.SkillsDir(s.home), SanitizeName(name))
	if _, err := os.Stat(folder); err == nil {
		return types.Skill{}, apperr.InvalidPath("skill '%s' already exists", name)
	}

	if err := os.MkdirAll(folder, 0755); err != nil {
		return types.Skill{}, apperr.IO("failed to create skill folder", err)
	}

	if content == "" {
		content = template.Default(agent, format)
	}

	fileName := "skill." + format.Extension()
	filePath := filepath.Join(folder, fileName)
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		return types.Skill{}, apperr.IO("failed to write entry file", err)
	}

	file := types.SkillFile{
		Name:    fileName,
		Path:    filePath,
		Format:  format,
		IsEntry: true,
		Size:    int64(len(content)),
	}

	skill := types.NewFolderSkill(name, folder, agent, []types.SkillFile{file})
	skill.Description = description
	if tags != nil {
		skill.Tags = tags
	}
	skill.Version = "1.0.0"
	return skill, nil
}

// CreateFile adds a file to an existing skill folder. The format
// extension is appended only when the sanitized name has none.
func (s *Store) CreateFile(skillFolder, fileName string, format types.Format, content string) (types.SkillFile, error) {
	if _, err := os.Stat(skillFolder); err != nil {
		return types.SkillFile{}, apperr.NotFound("skill folder not found: %s", skillFolder)
	}

	name := sanitizeFileName(fileName)
	if !strings.Contains(name, ".") {
		name = name + "." + format.Extension()
	}

	path := filepath.Join(skillFolder, name)
	if _, err := os.Stat(path); err == nil {
		return types.SkillFile{}, apperr.AlreadyExists("file '%s' already exists", name)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return types.SkillFile{}, apperr.IO("failed to write file", err)
	}

	return types.SkillFile{
		Name:    name,
		Path:    path,
		Format:  format,
		IsEntry: false,
		Size:    int64(len(content)),
	}, nil
}

// ReadContent returns the text content of a skill file.
func (s *Store) ReadContent(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", apperr.NotFound("file not found: %s", path)
		}
		return "", apperr.IO("failed to read file", err)
	}
	return string(data), nil
}

// UpdateContent replaces a file's content. The content policy is
// checked strictly before any write; when createBackup is set and a
// prior version exists, the vault snapshots it first.
func (s *Store) UpdateContent(path, content string, createBackup bool) error {
	if err := validateContent(content); err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && createBackup {
		if _, err := s.vault.BackupFile(path); err != nil {
			return err
		}
	}

	return writeFileAtomic(path, []byte(content))
}

// DeleteSkill backs up and removes a whole skill (folder or single
// file).
func (s *Store) DeleteSkill(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return apperr.NotFound("skill not found: %s", path)
	}

	if info.IsDir() {
		if _, err := s.vault.BackupFolder(path); err != nil {
			return err
		}
		if err := os.RemoveAll(path); err != nil {
			return apperr.IO("failed to remove skill folder", err)
		}
		return nil
	}

	if _, err := s.vault.BackupFile(path); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return apperr.IO("failed to remove skill file", err)
	}
	return nil
}

// DeleteFile backs up and removes a single file within a skill.
func (s *Store) DeleteFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return apperr.NotFound("file not found: %s", path)
	}
	if _, err := s.vault.BackupFile(path); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return apperr.IO("failed to remove file", err)
	}
	return nil
}

// DuplicateSkill copies a skill to a sibling path derived from the
// sanitized new name and returns the destination path.
func (s *Store) DuplicateSkill(sourcePath, newName string) (string, error) {
	dest, isDir, err := s.siblingDest(sourcePath, newName)
	if err != nil {
		return "", err
	}

	if isDir {
		if err := copyTree(sourcePath, dest); err != nil {
			return "", apperr.IO("failed to copy skill folder", err)
		}
	} else if err := copyFile(sourcePath, dest); err != nil {
		return "", apperr.IO("failed to copy skill file", err)
	}
	return dest, nil
}

// RenameSkill moves a skill to a sibling path derived from the
// sanitized new name and returns the destination path.
func (s *Store) RenameSkill(sourcePath, newName string) (string, error) {
	dest, _, err := s.siblingDest(sourcePath, newName)
	if err != nil {
		return "", err
	}
	if err := os.Rename(sourcePath, dest); err != nil {
		return "", apperr.IO("failed to rename skill", err)
	}
	return dest, nil
}

// Export returns the file's content and basename for hand-off to an
// external save dialog.
func (s *Store) Export(path string) (ExportData, error) {
	content, err := s.ReadContent(path)
	if err != nil {
		return ExportData{}, err
	}
	return ExportData{Filename: filepath.Base(path), Content: content}, nil
}

func (s *Store) siblingDest(sourcePath, newName string) (dest string, isDir bool, err error) {
	info, err := os.Stat(sourcePath)
	if err != nil {
		return "", false, apperr.NotFound("skill not found: %s", sourcePath)
	}

	dest = filepath.Join(filepath.Dir(sourcePath), SanitizeName(newName))
	if _, err := os.Stat(dest); err == nil {
		return "", false, apperr.AlreadyExists("'%s' already exists", newName)
	}
	return dest, info.IsDir(), nil
}

// SanitizeName lower-cases a requested name and replaces every
// character outside [A-Za-z0-9_-] with '-'. Distinct names can collide
// after sanitization; that is an accepted trade-off.
func SanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}

// sanitizeFileName sanitizes the stem like SanitizeName but preserves
// the final extension so that extension detection still works.
func sanitizeFileName(name string) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if stem == "" {
		return SanitizeName(ext)
	}
	if ext == "" {
		return SanitizeName(stem)
	}
	return SanitizeName(stem) + "." + SanitizeName(ext[1:])
}

func validateContent(content string) error {
	if len(content) > maxContentBytes {
		return apperr.InvalidPath("content too large (max 1MB)")
	}
	if strings.ContainsRune(content, 0) {
		return apperr.InvalidPath("binary content not allowed")
	}
	return nil
}

// writeFileAtomic writes to a sibling temp path and renames it into
// place.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp." + time.Now().Format("20060102150405")
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return apperr.IO("failed to write temporary file", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return apperr.IO("failed to replace file", err)
	}
	return nil
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
