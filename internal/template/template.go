// Package template provides default entry-file content per (agent,
// format) pair, used when a skill is created without caller-supplied
// content.
package template

import "github.com/bachdx2812/ai-skills-aggregator/internal/types"

// Default returns starter content for a new skill entry file.
func Default(agent types.Agent, format types.Format) string {
	switch {
	case agent.Kind == types.AgentClaude && format == types.FormatPython:
		return pythonSkill
	case agent.Kind == types.AgentCursor:
		return cursorRules
	case agent.Kind == types.AgentContinueDev && format == types.FormatJSON:
		return continueConfig
	case agent.Kind == types.AgentAider && format == types.FormatYAML:
		return aiderConfig
	case agent.Kind == types.AgentAider:
		return aiderPrompt
	case format == types.FormatMarkdown:
		return markdownSkill
	default:
		return genericSkill
	}
}

const markdownSkill = `# Skill Name

Brief description of what this skill does.

## Usage

When to use this skill and how it helps.

## Instructions

1. First instruction
2. Second instruction
3. Third instruction

## Examples

` + "```" + `
Example usage here
` + "```" + `

## Notes

- Additional notes
- Limitations or caveats
`

const pythonSkill = `#!/usr/bin/env python3
"""
Skill Name

Brief description of what this skill does.
"""

import sys

def main():
    """Main entry point for the skill."""
    print("Hello from skill!")
    return 0

if __name__ == "__main__":
    sys.exit(main())
`

const cursorRules = `# Cursor Rules

You are an expert assistant following these guidelines:

## Code Style
- Write clean, readable code
- Follow best practices
- Add meaningful comments

## Behavior
- Be concise and helpful
- Explain your reasoning
- Suggest improvements

## Restrictions
- Don't make assumptions
- Ask for clarification when needed
`

const continueConfig = `{
  "name": "Custom Skill",
  "version": "1.0.0",
  "description": "Brief description",
  "systemMessage": "You are a helpful assistant.",
  "contextProviders": [],
  "slashCommands": []
}
`

const aiderConfig = `# Aider Configuration

model: gpt-4
edit-format: diff
auto-commits: true

# Custom settings
map-tokens: 1024
`

const aiderPrompt = `You are an expert developer. Follow these guidelines:

1. Write clean, maintainable code
2. Add tests for new features
3. Document complex logic
4. Follow project conventions
`

const genericSkill = `# Skill Name

## Description

What this skill does.

## Instructions

1. Step one
2. Step two
3. Step three
`
