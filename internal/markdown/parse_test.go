package markdown

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseWithFrontmatter(t *testing.T) {
	raw := "" +
		"---\n" +
		"title: \"Pjuskeby Whisper 2026-08-28\"\n" +
		"slug: weekly-20260828\n" +
		"datetime: 2026-08-28 06:00\n" +
		"summary: |-\n" +
		"  The hat rumor refuses to die.\n" +
		"---\n\n" +
		"## Trending this week\n\nBody paragraph here.\n"
	doc, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got := doc.Title(); got != "Pjuskeby Whisper 2026-08-28" {
		t.Errorf("Title = %q", got)
	}
	if got := doc.Slug(); got != "weekly-20260828" {
		t.Errorf("Slug = %q", got)
	}
	if _, ok := doc.Frontmatter["summary"]; !ok {
		t.Errorf("missing summary in frontmatter")
	}
	if !strings.Contains(doc.Body, "## Trending this week") {
		t.Errorf("body missing heading; got: %q", doc.Body)
	}
	if strings.Contains(doc.Body, "---") {
		t.Errorf("fence leaked into body: %q", doc.Body)
	}
}

func TestParseWithoutFrontmatter(t *testing.T) {
	body := "# Hello\n\nNo frontmatter here.\n"
	doc, err := Parse(body)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(doc.Frontmatter) != 0 {
		t.Fatalf("expected empty frontmatter, got: %+v", doc.Frontmatter)
	}
	if doc.Body != body {
		t.Errorf("body mismatch.\nwant: %q\n got: %q", body, doc.Body)
	}
	if doc.Title() != "" {
		t.Errorf("Title = %q, want empty", doc.Title())
	}
}

func TestParseUnterminatedFrontmatter(t *testing.T) {
	if _, err := Parse("---\ntitle: broken\n"); err == nil {
		t.Fatalf("expected error for unterminated frontmatter")
	}
}

func TestParseFile(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "weekly-20260828.md")
	content := "---\nslug: weekly-20260828\n---\nbody\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	doc, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	if doc.Slug() != "weekly-20260828" {
		t.Errorf("Slug = %q", doc.Slug())
	}
}
