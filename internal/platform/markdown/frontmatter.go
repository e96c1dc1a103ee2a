package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const separator = "---\n"

// Render writes meta as a yaml frontmatter block followed by body. Meta is
// typically a typed struct so journal notes keep a stable field order.
func Render(meta any, body string) (string, error) {
	raw, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	buf := bytes.Buffer{}
	buf.WriteString(separator)
	buf.Write(raw)
	buf.WriteString(separator)
	if !strings.HasPrefix(body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString(body)
	return buf.String(), nil
}

// Split separates the frontmatter block from the body and unmarshals it
// into meta. Content without a frontmatter block leaves meta untouched.
func Split(content string, meta any) (string, error) {
	if !strings.HasPrefix(content, separator) {
		return content, nil
	}
	rest := strings.TrimPrefix(content, separator)
	idx := strings.Index(rest, "\n---\n")
	if idx < 0 {
		return "", fmt.Errorf("invalid frontmatter: missing closing separator")
	}
	raw := rest[:idx]
	body := rest[idx+len("\n---\n"):]
	if err := yaml.Unmarshal([]byte(raw), meta); err != nil {
		return "", fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	return body, nil
}
