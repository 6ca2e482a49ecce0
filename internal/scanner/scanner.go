// Package scanner discovers skills across the per-agent configuration
// directories and normalizes them into the catalog model. A failure in
// one agent's scan is logged and skipped; it never aborts the overall
// scan.
package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bachdx2812/ai-skills-aggregator/internal/apperr"
	"github.com/bachdx2812/ai-skills-aggregator/internal/types"
)

const maxDescriptionLen = 200

// Logger is the structured logging interface used by the scanner.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
}

// NoOpLogger discards all log output.
type NoOpLogger struct{}

func (NoOpLogger) Debug(msg string, fields ...interface{})            {}
func (NoOpLogger) Info(msg string, fields ...interface{})             {}
func (NoOpLogger) Warn(msg string, fields ...interface{})             {}
func (NoOpLogger) Error(msg string, err error, fields ...interface{}) {}

type Scanner struct {
	logger Logger
}

func New() *Scanner {
	return &Scanner{logger: NoOpLogger{}}
}

func (s *Scanner) SetLogger(logger Logger) {
	s.logger = logger
}

// ScanAll builds the full catalog from the enabled descriptors, in
// descriptor order.
func (s *Scanner) ScanAll(configs []types.AgentConfig) []types.Skill {
	var all []types.Skill

	for _, cfg := range configs {
		if !cfg.Enabled {
			continue
		}
		skills, err := s.ScanAgent(cfg)
		if err != nil {
			s.logger.Warn("failed to scan skills", "agent", cfg.Agent.String(), "error", err)
			continue
		}
		all = append(all, skills...)
	}

	return all
}

// ScanAgent scans one descriptor: subdirectories of the dedicated
// skills directory become folder skills, and glob matches directly
// under the config directory become single-file skills.
func (s *Scanner) ScanAgent(cfg types.AgentConfig) ([]types.Skill, error) {
	var skills []types.Skill

	if cfg.SkillsDir != "" {
		entries, err := os.ReadDir(cfg.SkillsDir)
		if err != nil && !os.IsNotExist(err) {
			return nil, apperr.IO("failed to read skills directory", err)
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				// Loose files in the skills directory are not skills.
				continue
			}
			skill, err := s.ParseSkillFolder(filepath.Join(cfg.SkillsDir, entry.Name()), cfg.Agent)
			if err != nil {
				s.logger.Warn("failed to parse skill folder", "path", entry.Name(), "error", err)
				continue
			}
			skills = append(skills, skill)
		}
	}

	for _, pattern := range cfg.FilePatterns {
		// Patterns under the skills directory are handled above.
		if strings.Contains(pattern, "skills/") {
			continue
		}
		matches, err := filepath.Glob(filepath.Join(cfg.ConfigDir, pattern))
		if err != nil {
			s.logger.Warn("bad file pattern", "pattern", pattern, "error", err)
			continue
		}
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			if cfg.SkillsDir != "" && strings.HasPrefix(match, cfg.SkillsDir+string(filepath.Separator)) {
				continue
			}
			skill, err := s.ParseSingleFile(match, cfg.Agent)
			if err != nil {
				s.logger.Warn("failed to parse skill file", "path", match, "error", err)
				continue
			}
			skills = append(skills, skill)
		}
	}

	return skills, nil
}

// Entry-file candidates in precedence order. The rank is enforced at
// comparison time, so skill.md wins regardless of the order the
// filesystem yields names in.
func entryRank(fileName, folderName string) int {
	switch fileName {
	case "skill.md":
		return 0
	case "index.md":
		return 1
	case "README.md":
		return 2
	case folderName + ".md":
		return 3
	default:
		return -1
	}
}

// ParseSkillFolder builds a folder skill: top-level files are entry
// candidates, subdirectory files (references/, scripts/, ...) are
// always non-entry. The combined list is sorted entry first, remainder
// lexicographic.
func (s *Scanner) ParseSkillFolder(folderPath string, agent types.Agent) (types.Skill, error) {
	folderName := filepath.Base(folderPath)

	entries, err := os.ReadDir(folderPath)
	if err != nil {
		return types.Skill{}, apperr.IO("failed to read skill folder", err)
	}

	var files []types.SkillFile
	bestRank := -1
	bestIdx := -1

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(folderPath, entry.Name())
		files = append(files, newSkillFile(entry.Name(), path))

		rank := entryRank(entry.Name(), folderName)
		if rank >= 0 && (bestRank < 0 || rank < bestRank) {
			bestRank = rank
			bestIdx = len(files) - 1
		}
	}
	if bestIdx >= 0 {
		files[bestIdx].IsEntry = true
	}

	for _, entry := range entries {
		if entry.IsDir() {
			collectFiles(filepath.Join(folderPath, entry.Name()), &files)
		}
	}

	sortFiles(files)

	skill := types.NewFolderSkill(folderName, folderPath, agent, files)
	if skill.EntryFile != "" {
		if content, err := os.ReadFile(skill.EntryFile); err == nil {
			skill.Description = extractDescription(string(content))
		}
	}
	applyTimestamps(&skill, folderPath)
	return skill, nil
}

// ParseSingleFile treats one bare configuration file (CLAUDE.md,
// .cursorrules, ...) as a one-file skill.
func (s *Scanner) ParseSingleFile(path string, agent types.Agent) (types.Skill, error) {
	info, err := os.Stat(path)
	if err != nil {
		return types.Skill{}, apperr.NotFound("file not found: %s", path)
	}

	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" {
		name = base
	}
	format := types.FormatFromExtension(filepath.Ext(base))

	skill := types.NewSingleFileSkill(name, path, agent, format, info.Size())
	if content, err := os.ReadFile(path); err == nil {
		skill.Description = extractDescription(string(content))
	}
	applyTimestamps(&skill, path)
	return skill, nil
}

// SkillFiles lists every file of a skill path: a recursive walk for
// folders, a single entry for bare files.
func (s *Scanner) SkillFiles(path string) ([]types.SkillFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, apperr.NotFound("skill not found: %s", path)
	}

	if !info.IsDir() {
		file := newSkillFile(filepath.Base(path), path)
		file.IsEntry = true
		return []types.SkillFile{file}, nil
	}

	var files []types.SkillFile
	collectFiles(path, &files)
	return files, nil
}

func newSkillFile(name, path string) types.SkillFile {
	var size int64
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}
	return types.SkillFile{
		Name:   name,
		Path:   path,
		Format: types.FormatFromExtension(filepath.Ext(name)),
		Size:   size,
	}
}

func collectFiles(dir string, files *[]types.SkillFile) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			collectFiles(path, files)
			continue
		}
		*files = append(*files, newSkillFile(entry.Name(), path))
	}
}

func sortFiles(files []types.SkillFile) {
	// Entry first, remainder alphabetical.
	sort.SliceStable(files, func(i, j int) bool {
		if files[i].IsEntry != files[j].IsEntry {
			return files[i].IsEntry
		}
		return files[i].Name < files[j].Name
	})
}

// extractDescription returns the first non-blank line that is not a
// heading, truncated to 200 characters. No such line means no
// description.
func extractDescription(content string) string {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		runes := []rune(trimmed)
		if len(runes) > maxDescriptionLen {
			return string(runes[:maxDescriptionLen])
		}
		return trimmed
	}
	return ""
}

func applyTimestamps(skill *types.Skill, path string) {
	// Modification time is available everywhere; creation time is not,
	// so CreatedAt keeps the construction-time fallback.
	if info, err := os.Stat(path); err == nil {
		skill.UpdatedAt = info.ModTime().Unix()
	}
}
