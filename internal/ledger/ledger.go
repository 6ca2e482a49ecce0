// Package ledger persists the installed-skills records and the
// skipped-versions list. Both files are plain JSON arrays rewritten in
// full on every mutation; a missing file reads as an empty list.
// Mutations are serialized per file path in-process, which is the only
// concurrency guarantee — concurrent writers from separate processes
// can lose updates, an accepted limitation for a single-user tool.
package ledger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"

	"github.com/bachdx2812/ai-skills-aggregator/internal/apperr"
	"github.com/bachdx2812/ai-skills-aggregator/internal/types"
)

var pathMutexes sync.Map

func lockPath(path string) *sync.Mutex {
	mu, _ := pathMutexes.LoadOrStore(path, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

type Ledger struct {
	path string
}

// DefaultPath is the ledger location under the platform data
// directory.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, "ai-skills-aggregator", "installed-skills.json")
}

func New(path string) *Ledger {
	return &Ledger{path: path}
}

// Load reads the full ledger. A missing file is an empty ledger.
func (l *Ledger) Load() ([]types.InstalledSkill, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []types.InstalledSkill{}, nil
		}
		return nil, apperr.IO("failed to read ledger", err)
	}

	var skills []types.InstalledSkill
	if err := json.Unmarshal(data, &skills); err != nil {
		return nil, apperr.Parse("failed to parse ledger", err)
	}
	return skills, nil
}

// Save rewrites the full ledger.
func (l *Ledger) Save(skills []types.InstalledSkill) error {
	return saveJSON(l.path, skills)
}

// Record adds a row, superseding any prior row for the same
// (skill id, agent) pair.
func (l *Ledger) Record(skill types.InstalledSkill) error {
	mu := lockPath(l.path)
	mu.Lock()
	defer mu.Unlock()

	skills, err := l.Load()
	if err != nil {
		return err
	}

	kept := skills[:0]
	for _, s := range skills {
		if s.SkillID == skill.SkillID && s.Agent == skill.Agent {
			continue
		}
		kept = append(kept, s)
	}
	kept = append(kept, skill)

	return l.Save(kept)
}

// Remove deletes the row for (skill id, agent). It fails NotFound when
// no such row exists.
func (l *Ledger) Remove(skillID, agent string) error {
	mu := lockPath(l.path)
	mu.Lock()
	defer mu.Unlock()

	skills, err := l.Load()
	if err != nil {
		return err
	}

	kept := skills[:0]
	found := false
	for _, s := range skills {
		if s.SkillID == skillID && s.Agent == agent {
			found = true
			continue
		}
		kept = append(kept, s)
	}
	if !found {
		return apperr.NotFound("skill %s not installed for %s", skillID, agent)
	}

	return l.Save(kept)
}

// Find returns the row for (skill id, agent), if any.
func (l *Ledger) Find(skillID, agent string) (types.InstalledSkill, bool, error) {
	skills, err := l.Load()
	if err != nil {
		return types.InstalledSkill{}, false, err
	}
	for _, s := range skills {
		if s.SkillID == skillID && s.Agent == agent {
			return s, true, nil
		}
	}
	return types.InstalledSkill{}, false, nil
}

func saveJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperr.IO("failed to create directory", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return apperr.Parse("failed to marshal", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return apperr.IO("failed to write temporary file", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return apperr.IO("failed to replace file", err)
	}
	return nil
}
