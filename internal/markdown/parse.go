// Package markdown reads the newsletter files the digest builder writes:
// markdown with a YAML frontmatter block.
package markdown

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---"

// Document is a parsed newsletter file.
type Document struct {
	Frontmatter map[string]any
	Body        string
}

// Title returns the frontmatter title, or "" when absent.
func (d Document) Title() string {
	return d.stringField("title")
}

// Slug returns the frontmatter slug, or "" when absent.
func (d Document) Slug() string {
	return d.stringField("slug")
}

func (d Document) stringField(key string) string {
	v, ok := d.Frontmatter[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// ParseFile reads a markdown file and splits off the YAML frontmatter.
// A file without a leading "---" fence is all body.
func ParseFile(path string) (Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	return Parse(string(b))
}

// Parse splits raw newsletter text into frontmatter and body.
func Parse(raw string) (Document, error) {
	d := Document{Frontmatter: map[string]any{}}
	if !strings.HasPrefix(raw, fence) {
		d.Body = raw
		return d, nil
	}
	// Drop the opening fence line, then split on the closing one.
	rest := strings.TrimPrefix(raw, fence)
	rest = strings.TrimPrefix(rest, "\n")
	parts := strings.SplitN(rest, "\n"+fence, 2)
	if len(parts) != 2 {
		return Document{}, fmt.Errorf("frontmatter not terminated")
	}
	if err := yaml.Unmarshal([]byte(parts[0]), &d.Frontmatter); err != nil {
		return Document{}, fmt.Errorf("parse frontmatter: %w", err)
	}
	body := parts[1]
	// The closing fence may be followed by the rest of its line.
	if i := strings.Index(body, "\n"); i >= 0 {
		body = body[i+1:]
	} else {
		body = ""
	}
	d.Body = strings.TrimLeft(body, "\n")
	return d, nil
}
