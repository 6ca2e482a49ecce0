// Package types holds the value types shared across the aggregator:
// the local skill catalog model, agent identities and formats, remote
// registry manifests, and the installed-skills ledger rows.
package types

import (
	"time"

	"github.com/google/uuid"
)

// SkillFile is one file belonging to a skill. At most one file of a
// folder skill is the entry file.
type SkillFile struct {
	Name    string `json:"name"`
	Path    string `json:"file_path"`
	Format  Format `json:"format"`
	IsEntry bool   `json:"is_entry"`
	Size    int64  `json:"size"`
}

// Skill is the unit of the local catalog: either a folder of files or
// a single bare configuration file. Skill ids are random and stable
// per creation, not derived from content.
type Skill struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Path        string      `json:"folder_path"`
	Agent       Agent       `json:"agent"`
	Files       []SkillFile `json:"files"`
	EntryFile   string      `json:"entry_file,omitempty"`
	Tags        []string    `json:"tags"`
	Version     string      `json:"version,omitempty"`
	Author      string      `json:"author,omitempty"`
	IsLocal     bool        `json:"is_local"`
	IsFolder    bool        `json:"is_folder"`
	FileCount   int         `json:"file_count"`
	CreatedAt   int64       `json:"created_at"`
	UpdatedAt   int64       `json:"updated_at"`
}

// NewFolderSkill builds a folder-based skill from an already sorted
// file list (entry first). Timestamps default to now; the scanner
// overrides them from filesystem metadata when available.
func NewFolderSkill(name, folderPath string, agent Agent, files []SkillFile) Skill {
	now := time.Now().Unix()

	var entry string
	for _, f := range files {
		if f.IsEntry {
			entry = f.Path
			break
		}
	}

	return Skill{
		ID:        uuid.NewString(),
		Name:      name,
		Path:      folderPath,
		Agent:     agent,
		Files:     files,
		EntryFile: entry,
		Tags:      []string{},
		IsLocal:   true,
		IsFolder:  true,
		FileCount: len(files),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewSingleFileSkill builds a skill from one bare configuration file.
func NewSingleFileSkill(name, filePath string, agent Agent, format Format, size int64) Skill {
	now := time.Now().Unix()

	file := SkillFile{
		Name:    name,
		Path:    filePath,
		Format:  format,
		IsEntry: true,
		Size:    size,
	}

	return Skill{
		ID:        uuid.NewString(),
		Name:      name,
		Path:      filePath,
		Agent:     agent,
		Files:     []SkillFile{file},
		EntryFile: filePath,
		Tags:      []string{},
		IsLocal:   true,
		IsFolder:  false,
		FileCount: 1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// BackupInfo describes one snapshot in the backup vault. The original
// name is embedded in the stored filename as <unix-ts>_<name>.
type BackupInfo struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	CreatedAt int64  `json:"created_at"`
}
