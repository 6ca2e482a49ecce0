package types

import (
	"encoding/json"
	"path/filepath"
	"strings"
)

// AgentKind enumerates the assistants with built-in directory
// conventions. AgentCustom covers everything else; a custom agent
// carries its name in Agent.Name.
type AgentKind int

const (
	AgentClaude AgentKind = iota
	AgentCursor
	AgentContinueDev
	AgentAider
	AgentWindsurf
	AgentCustom
)

// Agent identifies a target assistant tool. Equality is by kind plus
// name, so two custom agents with different names are distinct.
type Agent struct {
	Kind AgentKind
	Name string // set only for AgentCustom
}

var (
	Claude      = Agent{Kind: AgentClaude}
	Cursor      = Agent{Kind: AgentCursor}
	ContinueDev = Agent{Kind: AgentContinueDev}
	Aider       = Agent{Kind: AgentAider}
	Windsurf    = Agent{Kind: AgentWindsurf}
)

func CustomAgent(name string) Agent {
	return Agent{Kind: AgentCustom, Name: name}
}

// ParseAgent maps a string to an Agent. It is total: unrecognized
// names become custom agents rather than errors. Accepted aliases:
//
//	claude                          -> Claude
//	cursor                          -> Cursor
//	continue, continuedev, continue.dev -> ContinueDev
//	aider                           -> Aider
//	windsurf, codeium               -> Windsurf
func ParseAgent(s string) Agent {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "claude":
		return Claude
	case "cursor":
		return Cursor
	case "continue", "continuedev", "continue.dev":
		return ContinueDev
	case "aider":
		return Aider
	case "windsurf", "codeium":
		return Windsurf
	default:
		return CustomAgent(s)
	}
}

func (a Agent) String() string {
	switch a.Kind {
	case AgentClaude:
		return "Claude"
	case AgentCursor:
		return "Cursor"
	case AgentContinueDev:
		return "ContinueDev"
	case AgentAider:
		return "Aider"
	case AgentWindsurf:
		return "Windsurf"
	default:
		return a.Name
	}
}

// DotDir returns the agent's configuration directory name under the
// user's home directory.
func (a Agent) DotDir() string {
	switch a.Kind {
	case AgentClaude:
		return ".claude"
	case AgentCursor:
		return ".cursor"
	case AgentContinueDev:
		return ".continue"
	case AgentAider:
		return ".aider"
	case AgentWindsurf:
		return ".codeium"
	default:
		return "." + strings.ToLower(a.Name)
	}
}

// DefaultExtension is the filename extension used when materializing a
// skill entry file for this agent from a registry install.
func (a Agent) DefaultExtension() string {
	switch a.Kind {
	case AgentClaude:
		return "md"
	case AgentCursor:
		return "cursorrules"
	case AgentContinueDev:
		return "json"
	case AgentAider:
		return "txt"
	case AgentWindsurf:
		return "yaml"
	default:
		return "md"
	}
}

// SkillsDir returns the dedicated skills directory for this agent
// under the given home directory.
func (a Agent) SkillsDir(home string) string {
	return filepath.Join(home, a.DotDir(), "skills")
}

func (a Agent) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Agent) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*a = ParseAgent(s)
	return nil
}
