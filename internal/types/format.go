package types

import (
	"encoding/json"
	"strings"
)

// Format classifies a skill file by its content type, derived from the
// file extension.
type Format int

const (
	FormatMarkdown Format = iota
	FormatJSON
	FormatYAML
	FormatPython
	FormatPlainText
)

// FormatFromExtension maps a filename extension (without the dot) to a
// Format. It is total: anything unrecognized is plain text. Accepted
// aliases:
//
//	md, markdown -> Markdown
//	json         -> JSON
//	yaml, yml    -> YAML
//	py           -> Python
func FormatFromExtension(ext string) Format {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "md", "markdown":
		return FormatMarkdown
	case "json":
		return FormatJSON
	case "yaml", "yml":
		return FormatYAML
	case "py":
		return FormatPython
	default:
		return FormatPlainText
	}
}

// ParseFormat maps a format name to a Format, falling back to the
// extension aliases so "markdown" and "md" both work.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plaintext", "text", "txt":
		return FormatPlainText
	case "python":
		return FormatPython
	default:
		return FormatFromExtension(s)
	}
}

// Extension is the canonical filename extension for the format.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatPython:
		return "py"
	default:
		return "txt"
	}
}

func (f Format) String() string {
	switch f {
	case FormatMarkdown:
		return "Markdown"
	case FormatJSON:
		return "JSON"
	case FormatYAML:
		return "YAML"
	case FormatPython:
		return "Python"
	default:
		return "PlainText"
	}
}

func (f Format) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

func (f *Format) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = ParseFormat(s)
	return nil
}
