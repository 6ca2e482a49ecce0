package ledger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/bachdx2812/ai-skills-aggregator/internal/types"
)

// SkipList persists the versions the user opted out of. Suppressing a
// version never suppresses later versions of the same skill.
type SkipList struct {
	path string
}

// DefaultSkipPath is the skipped-versions file location under the
// platform data directory.
func DefaultSkipPath() string {
	return filepath.Join(xdg.DataHome, "ai-skills-aggregator", "skipped-versions.json")
}

func NewSkipList(path string) *SkipList {
	return &SkipList{path: path}
}

// Load reads the skip list. A missing or unreadable file reads as
// empty; the skip list is advisory, not load-bearing.
func (s *SkipList) Load() []types.SkippedVersion {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return []types.SkippedVersion{}
	}
	var skipped []types.SkippedVersion
	if err := json.Unmarshal(data, &skipped); err != nil {
		return []types.SkippedVersion{}
	}
	return skipped
}

// Add records a (skill id, version) pair, idempotently.
func (s *SkipList) Add(skillID, version string) error {
	mu := lockPath(s.path)
	mu.Lock()
	defer mu.Unlock()

	skipped := s.Load()
	for _, sv := range skipped {
		if sv.SkillID == skillID && sv.Version == version {
			return nil
		}
	}

	skipped = append(skipped, types.SkippedVersion{
		SkillID:   skillID,
		Version:   version,
		SkippedAt: time.Now().Unix(),
	})
	return saveJSON(s.path, skipped)
}

// IsSkipped reports whether the exact (skill id, version) pair is in
// the given list.
func IsSkipped(skipped []types.SkippedVersion, skillID, version string) bool {
	for _, sv := range skipped {
		if sv.SkillID == skillID && sv.Version == version {
			return true
		}
	}
	return false
}
