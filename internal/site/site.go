package site

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrFrontMatter = errors.New("site: malformed front matter")

const (
	layoutsDir = "_layouts"
	postsDir   = "_posts"
)

var (
	fmOpen  = []byte("---\n")
	fmClose = []byte("\n---")
)

// Layout is a template under _layouts, keyed by file name without extension.
type Layout struct {
	Name string
	Data map[string]any
	Body string
}

type Post struct {
	Path       string
	Title      string
	Date       time.Time
	Categories []string
	Data       map[string]any
	Body       string
}

// Site is the loaded source tree plus any generated pages.
type Site struct {
	Source  string
	Layouts map[string]*Layout
	Posts   []*Post
	Pages   []*Page
}

// Load reads layouts and posts below source. Missing directories are
// treated as empty.
func Load(source string) (*Site, error) {
	s := &Site{Source: source, Layouts: make(map[string]*Layout)}

	layouts, err := readDir(filepath.Join(source, layoutsDir))
	if err != nil {
		return nil, err
	}
	for _, path := range layouts {
		if filepath.Ext(path) != ".html" {
			continue
		}
		data, body, err := readDocument(path)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(path), ".html")
		s.Layouts[name] = &Layout{Name: name, Data: data, Body: body}
	}

	posts, err := readDir(filepath.Join(source, postsDir))
	if err != nil {
		return nil, err
	}
	for _, path := range posts {
		data, body, err := readDocument(path)
		if err != nil {
			return nil, err
		}
		s.Posts = append(s.Posts, newPost(path, data, body))
	}
	sort.SliceStable(s.Posts, func(i, j int) bool {
		return s.Posts[i].Date.After(s.Posts[j].Date)
	})
	return s, nil
}

// Categories groups posts by category name.
func (s *Site) Categories() map[string][]*Post {
	out := make(map[string][]*Post)
	for _, p := range s.Posts {
		for _, c := range p.Categories {
			out[c] = append(out[c], p)
		}
	}
	return out
}

// CategoryNames returns the distinct category names in sorted order.
func (s *Site) CategoryNames() []string {
	cats := s.Categories()
	names := make([]string, 0, len(cats))
	for c := range cats {
		names = append(names, c)
	}
	sort.Strings(names)
	return names
}

func readDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("site: read %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

func readDocument(path string) (map[string]any, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("site: %w", err)
	}
	data, body, err := parseFrontMatter(raw)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return data, body, nil
}

// parseFrontMatter splits an optional leading YAML block delimited by
// "---" lines from the document body.
func parseFrontMatter(raw []byte) (map[string]any, string, error) {
	data := make(map[string]any)
	raw = bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(raw, fmOpen) {
		return data, string(raw), nil
	}

	// keep the opening newline so an empty block still matches fmClose
	rest := raw[len(fmOpen)-1:]
	end := bytes.Index(rest, fmClose)
	if end < 0 {
		return nil, "", ErrFrontMatter
	}
	head := rest[:end]
	body := bytes.TrimPrefix(rest[end+len(fmClose):], []byte("\n"))

	if err := yaml.Unmarshal(head, &data); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}
	if data == nil {
		data = make(map[string]any)
	}
	return data, string(body), nil
}

func newPost(path string, data map[string]any, body string) *Post {
	p := &Post{Path: path, Data: data, Body: body}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if len(base) >= 10 {
		if d, err := time.Parse("2006-01-02", base[:10]); err == nil {
			p.Date = d
			base = strings.TrimPrefix(base[10:], "-")
		}
	}
	p.Title = base
	if t, ok := data["title"].(string); ok {
		p.Title = t
	}
	switch d := data["date"].(type) {
	case time.Time:
		p.Date = d
	case string:
		if t, err := time.Parse("2006-01-02", strings.TrimSpace(d)); err == nil {
			p.Date = t
		}
	}
	seen := make(map[string]bool)
	for _, c := range append(names(data["category"]), names(data["categories"])...) {
		if !seen[c] {
			seen[c] = true
			p.Categories = append(p.Categories, c)
		}
	}
	return p
}

// names accepts a space separated string or a YAML list.
func names(v any) []string {
	switch v := v.(type) {
	case string:
		return strings.Fields(v)
	case []any:
		var out []string
		for _, e := range v {
			if s := strings.TrimSpace(fmt.Sprint(e)); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
