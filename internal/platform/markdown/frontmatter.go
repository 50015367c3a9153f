package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const separator = "---\n"

// ErrNoFrontmatter is returned by DecodeFrontmatter for notes without a
// leading YAML block.
var ErrNoFrontmatter = fmt.Errorf("note has no frontmatter")

func splitFrontmatter(content string) (raw string, body string, ok bool, err error) {
	if !strings.HasPrefix(content, separator) {
		return "", content, false, nil
	}
	rest := strings.TrimPrefix(content, separator)
	idx := strings.Index(rest, "\n---\n")
	if idx < 0 {
		return "", "", false, fmt.Errorf("invalid frontmatter: missing closing separator")
	}
	return rest[:idx], rest[idx+len("\n---\n"):], true, nil
}

// DecodeFrontmatter unmarshals the YAML header of content into out and
// returns the remaining body.
func DecodeFrontmatter(content string, out any) (string, error) {
	raw, body, ok, err := splitFrontmatter(content)
	if err != nil {
		return "", err
	}
	if !ok {
		return body, ErrNoFrontmatter
	}
	if err := yaml.Unmarshal([]byte(raw), out); err != nil {
		return "", fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	return body, nil
}

func RenderFrontmatter(meta any, body string) (string, error) {
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
