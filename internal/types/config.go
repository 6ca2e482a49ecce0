package types

import "path/filepath"

// AgentConfig describes where and how to scan one agent's skills.
// SkillsDir is empty when the agent has no dedicated skills directory.
type AgentConfig struct {
	Agent        Agent    `json:"agent"`
	Name         string   `json:"name"`
	ConfigDir    string   `json:"config_dir"`
	SkillsDir    string   `json:"skills_dir,omitempty"`
	FilePatterns []string `json:"file_patterns"`
	Enabled      bool     `json:"enabled"`
}

// DefaultAgentConfigs returns the scan descriptors for the supported
// agents under the given home directory. Only Claude is enabled by
// default; the rest opt in.
func DefaultAgentConfigs(home string) []AgentConfig {
	return []AgentConfig{
		{
			Agent:     Claude,
			Name:      "Claude Code",
			ConfigDir: filepath.Join(home, ".claude"),
			SkillsDir: filepath.Join(home, ".claude", "skills"),
			FilePatterns: []string{
				"*.md",
				"CLAUDE.md",
				"rules/*.md",
			},
			Enabled: true,
		},
		{
			Agent:     Cursor,
			Name:      "Cursor",
			ConfigDir: filepath.Join(home, ".cursor"),
			FilePatterns: []string{
				".cursorrules",
				"*.cursorrules",
			},
			Enabled: false,
		},
		{
			Agent:     ContinueDev,
			Name:      "Continue.dev",
			ConfigDir: filepath.Join(home, ".continue"),
			FilePatterns: []string{
				"config.json",
				"profiles/*.json",
			},
			Enabled: false,
		},
		{
			Agent:     Aider,
			Name:      "Aider",
			ConfigDir: filepath.Join(home, ".aider"),
			FilePatterns: []string{
				".aider.conf.yml",
				"*.txt",
			},
			Enabled: false,
		},
		{
			Agent:     Windsurf,
			Name:      "Windsurf/Codeium",
			ConfigDir: filepath.Join(home, ".codeium"),
			FilePatterns: []string{
				"*.yaml",
				"*.json",
			},
			Enabled: false,
		},
	}
}
