package types

import "strings"

// SkillRegistry is a remote registry manifest. It must round-trip
// through both JSON and YAML; url and last_updated are stamped by the
// fetch path and default to zero values on the wire.
type SkillRegistry struct {
	Version     string        `json:"version" yaml:"version"`
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	URL         string        `json:"url" yaml:"url"`
	Skills      []RemoteSkill `json:"skills" yaml:"skills"`
	LastUpdated int64         `json:"last_updated" yaml:"last_updated"`
}

// FindSkill looks up a skill in the manifest by id.
func (r *SkillRegistry) FindSkill(id string) (RemoteSkill, bool) {
	for _, s := range r.Skills {
		if s.ID == id {
			return s, true
		}
	}
	return RemoteSkill{}, false
}

// RemoteSkill is one installable entry in a registry manifest.
type RemoteSkill struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string     `json:"version" yaml:"version"`
	Author      string     `json:"author,omitempty" yaml:"author,omitempty"`
	Agents      []string   `json:"agents" yaml:"agents"`
	Tags        []string   `json:"tags" yaml:"tags"`
	Files       SkillFiles `json:"files" yaml:"files"`
	URL         string     `json:"url,omitempty" yaml:"url,omitempty"`
	Checksum    string     `json:"checksum,omitempty" yaml:"checksum,omitempty"`
}

// SkillFiles maps agents to file references (relative to the registry
// base URL, or absolute). The ContinueDev field uses the continue_dev
// wire key because "continue" is awkward in several ecosystems.
type SkillFiles struct {
	Claude      string `json:"claude,omitempty" yaml:"claude,omitempty"`
	Cursor      string `json:"cursor,omitempty" yaml:"cursor,omitempty"`
	ContinueDev string `json:"continue_dev,omitempty" yaml:"continue_dev,omitempty"`
	Aider       string `json:"aider,omitempty" yaml:"aider,omitempty"`
	Windsurf    string `json:"windsurf,omitempty" yaml:"windsurf,omitempty"`
}

// ForAgent returns the file reference for the given agent name, using
// the same aliases as ParseAgent. Custom agents have no slot in the
// manifest, so they report unsupported.
func (f SkillFiles) ForAgent(agent string) (string, bool) {
	var ref string
	switch ParseAgent(agent).Kind {
	case AgentClaude:
		ref = f.Claude
	case AgentCursor:
		ref = f.Cursor
	case AgentContinueDev:
		ref = f.ContinueDev
	case AgentAider:
		ref = f.Aider
	case AgentWindsurf:
		ref = f.Windsurf
	default:
		return "", false
	}
	if strings.TrimSpace(ref) == "" {
		return "", false
	}
	return ref, true
}

// RegistryConfig identifies one remote registry source.
type RegistryConfig struct {
	URL       string `json:"url"`
	Name      string `json:"name"`
	Enabled   bool   `json:"enabled"`
	AuthToken string `json:"auth_token,omitempty"`
}

// InstalledSkill is one row of the installed-skills ledger. At most
// one row exists per (skill id, agent) pair.
type InstalledSkill struct {
	SkillID       string `json:"skill_id"`
	RegistryURL   string `json:"registry_url"`
	Version       string `json:"version"`
	InstalledPath string `json:"installed_path"`
	Agent         string `json:"agent"`
	InstalledAt   int64  `json:"installed_at"`
}

// SkillUpdate is a computed update proposal. It is never persisted.
type SkillUpdate struct {
	SkillID        string `json:"skill_id"`
	SkillName      string `json:"skill_name"`
	CurrentVersion string `json:"current_version"`
	NewVersion     string `json:"new_version"`
	Agent          string `json:"agent"`
	RegistryURL    string `json:"registry_url"`
	Changelog      string `json:"changelog,omitempty"`
	IsMajor        bool   `json:"is_major"`
}

// SkippedVersion suppresses one exact version of a skill from update
// results. Later versions are unaffected.
type SkippedVersion struct {
	SkillID   string `json:"skill_id"`
	Version   string `json:"version"`
	SkippedAt int64  `json:"skipped_at"`
}
