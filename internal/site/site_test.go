package site

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const categoryLayout = `---
layout: default
sitemap: false
---
<h1>{{ .Page.title }}</h1>
<ul>{{ range .Posts }}<li>{{ .Title }}</li>{{ end }}</ul>
`

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newSource(t *testing.T, withLayout bool) string {
	t.Helper()
	root := t.TempDir()
	if withLayout {
		writeFile(t, root, "_layouts/category.html", categoryLayout)
	}
	writeFile(t, root, "_layouts/default.html", "<html>{{ .Page.title }}</html>")
	writeFile(t, root, "_posts/2024-01-02-channels.md", "---\ntitle: Channels & select\ncategory: go\n---\nbody\n")
	writeFile(t, root, "_posts/2024-03-04-borrowck.md", "---\ntitle: Borrowing\ncategories: [rust]\n---\nbody\n")
	writeFile(t, root, "_posts/2024-05-06-generics.md", "---\ntitle: Generics\ncategories: go\n---\n")
	return root
}

func observed() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"go", "Go"},
		{"rust", "Rust"},
		{"rUST", "Rust"},
		{"Go", "Go"},
		{"", ""},
		{"élan", "Élan"},
		{"machine learning", "Machine learning"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Capitalize(tt.in), tt.in)
	}
}

func TestParseFrontMatter(t *testing.T) {
	data, body, err := parseFrontMatter([]byte("---\ntitle: Hi\ntags: [a, b]\n---\n<p>x</p>\n"))
	require.NoError(t, err)
	assert.Equal(t, "Hi", data["title"])
	assert.Equal(t, []any{"a", "b"}, data["tags"])
	assert.Equal(t, "<p>x</p>\n", body)

	data, body, err = parseFrontMatter([]byte("plain body"))
	require.NoError(t, err)
	assert.Empty(t, data)
	assert.Equal(t, "plain body", body)

	data, body, err = parseFrontMatter([]byte("---\n---\nempty"))
	require.NoError(t, err)
	assert.Empty(t, data)
	assert.Equal(t, "empty", body)

	data, _, err = parseFrontMatter([]byte("---\r\ntitle: crlf\r\n---\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "crlf", data["title"])

	_, _, err = parseFrontMatter([]byte("---\ntitle: open\n"))
	assert.ErrorIs(t, err, ErrFrontMatter)

	_, _, err = parseFrontMatter([]byte("---\ntitle: [unclosed\n---\n"))
	assert.ErrorIs(t, err, ErrFrontMatter)
}

func TestLoad(t *testing.T) {
	s, err := Load(newSource(t, true))
	require.NoError(t, err)

	require.Contains(t, s.Layouts, "category")
	require.Contains(t, s.Layouts, "default")
	assert.Equal(t, "default", s.Layouts["category"].Data["layout"])
	assert.Contains(t, s.Layouts["category"].Body, "<h1>")

	require.Len(t, s.Posts, 3)
	// newest first
	assert.Equal(t, "Generics", s.Posts[0].Title)
	assert.Equal(t, "Channels & select", s.Posts[2].Title)
	assert.Equal(t, 2024, s.Posts[2].Date.Year())

	assert.Equal(t, []string{"go", "rust"}, s.CategoryNames())
	assert.Len(t, s.Categories()["go"], 2)
}

func TestLoadMissingDirs(t *testing.T) {
	s, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, s.Layouts)
	assert.Empty(t, s.Posts)
}

func TestLoadBadFrontMatter(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "_posts/2024-01-01-bad.md", "---\ntitle: x\n")
	_, err := Load(root)
	assert.ErrorIs(t, err, ErrFrontMatter)
}

func TestPostCategories(t *testing.T) {
	p := newPost("_posts/2023-07-08-mixed-up.md", map[string]any{
		"category":   "go",
		"categories": []any{"go", "tooling", " "},
	}, "")
	assert.Equal(t, []string{"go", "tooling"}, p.Categories)
	assert.Equal(t, "mixed-up", p.Title)

	p = newPost("notes.md", map[string]any{"categories": "a b"}, "")
	assert.Equal(t, []string{"a", "b"}, p.Categories)
	assert.True(t, p.Date.IsZero())
}

func TestGenerateCategoriesWithoutLayout(t *testing.T) {
	s, err := Load(newSource(t, false))
	require.NoError(t, err)

	log, logs := observed()
	pages := GenerateCategories(s, log)

	assert.Empty(t, pages)
	assert.Empty(t, s.Pages)
	entries := logs.FilterMessage("category layout missing").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
}

func TestGenerateCategories(t *testing.T) {
	s, err := Load(newSource(t, true))
	require.NoError(t, err)

	pages := GenerateCategories(s, nil)
	require.Len(t, pages, 2)
	assert.Equal(t, pages, s.Pages)

	assert.Equal(t, "categories/go/index.html", pages[0].URL())
	assert.Equal(t, "categories/rust/index.html", pages[1].URL())
	assert.Equal(t, "Category: Go", pages[0].Data["title"])
	assert.Equal(t, "Category: Rust", pages[1].Data["title"])
	assert.Equal(t, "go", pages[0].Data["category"])

	// layout front matter is carried but not shared
	assert.Equal(t, "default", pages[0].Data["layout"])
	assert.Equal(t, false, pages[1].Data["sitemap"])
	assert.NotContains(t, s.Layouts["category"].Data, "title")
}

func TestWrite(t *testing.T) {
	s, err := Load(newSource(t, true))
	require.NoError(t, err)
	GenerateCategories(s, nil)

	dest := t.TempDir()
	require.NoError(t, Write(s, dest))

	out, err := os.ReadFile(filepath.Join(dest, "categories", "go", "index.html"))
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, "<h1>Category: Go</h1>")
	assert.Contains(t, html, "<li>Generics</li>")
	assert.Contains(t, html, "<li>Channels &amp; select</li>")
	assert.NotContains(t, html, "Borrowing")

	out, err = os.ReadFile(filepath.Join(dest, "categories", "rust", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "<li>Borrowing</li>")

	entries, err := os.ReadDir(filepath.Join(dest, "categories"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestWriteUnknownLayout(t *testing.T) {
	s := &Site{Layouts: map[string]*Layout{}}
	s.Pages = append(s.Pages, &Page{Dir: "x", Name: indexName, Layout: "nope"})
	assert.ErrorIs(t, Write(s, t.TempDir()), ErrNoLayout)
}
