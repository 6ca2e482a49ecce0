package scanner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bachdx2812/ai-skills-aggregator/internal/types"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func claudeConfig(home string) types.AgentConfig {
	return types.AgentConfig{
		Agent:        types.Claude,
		Name:         "Claude Code",
		ConfigDir:    filepath.Join(home, ".claude"),
		SkillsDir:    filepath.Join(home, ".claude", "skills"),
		FilePatterns: []string{"*.md", "rules/*.md"},
		Enabled:      true,
	}
}

func TestParseSkillFolderEntryPrecedence(t *testing.T) {
	tests := []struct {
		name      string
		files     []string
		wantEntry string
	}{
		{"skill.md beats readme", []string{"README.md", "skill.md"}, "skill.md"},
		{"skill.md beats everything", []string{"README.md", "index.md", "my-skill.md", "skill.md"}, "skill.md"},
		{"index.md beats readme", []string{"README.md", "index.md"}, "index.md"},
		{"readme beats folder-named", []string{"my-skill.md", "README.md"}, "README.md"},
		{"folder-named as last resort", []string{"notes.md", "my-skill.md"}, "my-skill.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			folder := filepath.Join(t.TempDir(), "my-skill")
			for _, f := range tt.files {
				writeFile(t, filepath.Join(folder, f), "content")
			}

			skill, err := New().ParseSkillFolder(folder, types.Claude)
			if err != nil {
				t.Fatalf("ParseSkillFolder() error = %v", err)
			}
			if skill.EntryFile != filepath.Join(folder, tt.wantEntry) {
				t.Errorf("EntryFile = %q, want %q", skill.EntryFile, tt.wantEntry)
			}
			if len(skill.Files) == 0 || !skill.Files[0].IsEntry {
				t.Error("entry file should sort first")
			}
		})
	}
}

func TestParseSkillFolderNoEntry(t *testing.T) {
	folder := filepath.Join(t.TempDir(), "my-skill")
	writeFile(t, filepath.Join(folder, "notes.md"), "content")
	writeFile(t, filepath.Join(folder, "data.json"), "{}")

	skill, err := New().ParseSkillFolder(folder, types.Claude)
	if err != nil {
		t.Fatal(err)
	}
	if skill.EntryFile != "" {
		t.Errorf("EntryFile = %q, want none", skill.EntryFile)
	}
	if skill.FileCount != 2 {
		t.Errorf("FileCount = %d, want 2", skill.FileCount)
	}
}

func TestParseSkillFolderSubdirsAreNeverEntries(t *testing.T) {
	folder := filepath.Join(t.TempDir(), "my-skill")
	writeFile(t, filepath.Join(folder, "skill.md"), "# Title\n\nThe entry.")
	writeFile(t, filepath.Join(folder, "references", "skill.md"), "nested same name")
	writeFile(t, filepath.Join(folder, "scripts", "run.py"), "print()")

	skill, err := New().ParseSkillFolder(folder, types.Claude)
	if err != nil {
		t.Fatal(err)
	}

	if skill.FileCount != 3 {
		t.Errorf("FileCount = %d, want 3", skill.FileCount)
	}
	entries := 0
	for _, f := range skill.Files {
		if f.IsEntry {
			entries++
			if f.Path != filepath.Join(folder, "skill.md") {
				t.Errorf("entry = %q, want the top-level skill.md", f.Path)
			}
		}
	}
	if entries != 1 {
		t.Errorf("got %d entry files, want 1", entries)
	}
}

func TestParseSkillFolderDescription(t *testing.T) {
	folder := filepath.Join(t.TempDir(), "my-skill")
	writeFile(t, filepath.Join(folder, "skill.md"), "# Heading\n\n  Helps with code review.  \nMore text.")

	skill, err := New().ParseSkillFolder(folder, types.Claude)
	if err != nil {
		t.Fatal(err)
	}
	if skill.Description != "Helps with code review." {
		t.Errorf("Description = %q", skill.Description)
	}
}

func TestExtractDescription(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"skips headings and blanks", "# Title\n\n## Sub\nreal text", "real text"},
		{"all headings", "# One\n## Two", ""},
		{"empty", "", ""},
		{"truncates", strings.Repeat("x", 300), strings.Repeat("x", 200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractDescription(tt.content); got != tt.want {
				t.Errorf("extractDescription() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScanAgentFolderAndLooseFiles(t *testing.T) {
	home := t.TempDir()
	cfg := claudeConfig(home)

	writeFile(t, filepath.Join(cfg.SkillsDir, "review", "skill.md"), "# Review")
	writeFile(t, filepath.Join(cfg.SkillsDir, "deploy", "skill.md"), "# Deploy")
	// Loose file directly in the skills directory: not a skill.
	writeFile(t, filepath.Join(cfg.SkillsDir, "stray.md"), "stray")
	// Glob match under the config directory: single-file skill.
	writeFile(t, filepath.Join(cfg.ConfigDir, "CLAUDE.md"), "global instructions")
	writeFile(t, filepath.Join(cfg.ConfigDir, "rules", "style.md"), "style rules")

	skills, err := New().ScanAgent(cfg)
	if err != nil {
		t.Fatalf("ScanAgent() error = %v", err)
	}

	byName := map[string]types.Skill{}
	for _, s := range skills {
		byName[s.Name] = s
	}

	if len(skills) != 4 {
		t.Fatalf("got %d skills (%v), want 4", len(skills), names(skills))
	}
	if s, ok := byName["review"]; !ok || !s.IsFolder {
		t.Error("missing folder skill 'review'")
	}
	if s, ok := byName["CLAUDE"]; !ok || s.IsFolder {
		t.Error("missing single-file skill 'CLAUDE'")
	}
	if _, ok := byName["style"]; !ok {
		t.Error("missing single-file skill 'style' from rules/*.md")
	}
	if _, ok := byName["stray"]; ok {
		t.Error("loose file in skills dir should be ignored")
	}
}

func TestScanAgentMissingDirectories(t *testing.T) {
	skills, err := New().ScanAgent(claudeConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("ScanAgent() error = %v", err)
	}
	if len(skills) != 0 {
		t.Errorf("got %d skills, want 0", len(skills))
	}
}

func TestScanAllSkipsDisabled(t *testing.T) {
	home := t.TempDir()
	enabled := claudeConfig(home)
	writeFile(t, filepath.Join(enabled.SkillsDir, "review", "skill.md"), "# Review")

	disabled := types.AgentConfig{
		Agent:        types.Cursor,
		Name:         "Cursor",
		ConfigDir:    filepath.Join(home, ".cursor"),
		FilePatterns: []string{"*.cursorrules"},
		Enabled:      false,
	}
	writeFile(t, filepath.Join(disabled.ConfigDir, "x.cursorrules"), "rules")

	skills := New().ScanAll([]types.AgentConfig{enabled, disabled})
	if len(skills) != 1 {
		t.Fatalf("got %d skills (%v), want 1", len(skills), names(skills))
	}
	if skills[0].Agent != types.Claude {
		t.Errorf("Agent = %v, want claude", skills[0].Agent)
	}
}

func TestParseSingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CLAUDE.md")
	writeFile(t, path, "# Global\nproject conventions")

	skill, err := New().ParseSingleFile(path, types.Claude)
	if err != nil {
		t.Fatalf("ParseSingleFile() error = %v", err)
	}
	if skill.Name != "CLAUDE" {
		t.Errorf("Name = %q, want CLAUDE", skill.Name)
	}
	if skill.IsFolder {
		t.Error("single-file skill should not be a folder")
	}
	if skill.FileCount != 1 {
		t.Errorf("FileCount = %d, want 1", skill.FileCount)
	}
	if skill.Description != "project conventions" {
		t.Errorf("Description = %q", skill.Description)
	}
	if len(skill.Files) != 1 || !skill.Files[0].IsEntry {
		t.Error("the single file is the entry")
	}
}

func TestSkillFiles(t *testing.T) {
	folder := filepath.Join(t.TempDir(), "my-skill")
	writeFile(t, filepath.Join(folder, "skill.md"), "entry")
	writeFile(t, filepath.Join(folder, "scripts", "run.py"), "code")

	files, err := New().SkillFiles(folder)
	if err != nil {
		t.Fatalf("SkillFiles() error = %v", err)
	}
	if len(files) != 2 {
		t.Errorf("got %d files, want 2", len(files))
	}
}

func names(skills []types.Skill) []string {
	out := make([]string, len(skills))
	for i, s := range skills {
		out[i] = s.Name
	}
	return out
}
