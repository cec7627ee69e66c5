package site

import (
	"errors"
	"fmt"
	"html/template"
	"maps"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	CategoryLayout = "category"
	categoriesDir  = "categories"
	indexName      = "index.html"
)

var ErrNoLayout = errors.New("site: layout not found")

// Page is a generated output file rendered through a layout.
type Page struct {
	Dir    string
	Name   string
	Layout string
	Data   map[string]any
}

// URL is the page path relative to the destination root.
func (p *Page) URL() string {
	return path.Join(p.Dir, p.Name)
}

func (p *Page) category() string {
	c, _ := p.Data["category"].(string)
	return c
}

// GenerateCategories appends one index page per category to s.Pages and
// returns the new pages. Without a category layout nothing is generated.
func GenerateCategories(s *Site, log *zap.Logger) []*Page {
	if log == nil {
		log = zap.NewNop()
	}
	layout, ok := s.Layouts[CategoryLayout]
	if !ok {
		log.Info("category layout missing", zap.String("source", s.Source))
		return nil
	}

	var pages []*Page
	for _, c := range s.CategoryNames() {
		data := maps.Clone(layout.Data)
		if data == nil {
			data = make(map[string]any)
		}
		data["category"] = c
		data["title"] = "Category: " + Capitalize(c)
		pages = append(pages, &Page{
			Dir:    path.Join(categoriesDir, c),
			Name:   indexName,
			Layout: CategoryLayout,
			Data:   data,
		})
	}
	s.Pages = append(s.Pages, pages...)
	log.Debug("generated category pages", zap.Int("count", len(pages)))
	return pages
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[n:])
}

type pageView struct {
	Page  map[string]any
	Posts []*Post
}

// Write renders every generated page into dest.
func Write(s *Site, dest string) error {
	cats := s.Categories()
	tmpls := make(map[string]*template.Template)

	for _, p := range s.Pages {
		tmpl, ok := tmpls[p.Layout]
		if !ok {
			layout, found := s.Layouts[p.Layout]
			if !found {
				return fmt.Errorf("%w: %s", ErrNoLayout, p.Layout)
			}
			var err error
			tmpl, err = template.New(p.Layout).Parse(layout.Body)
			if err != nil {
				return fmt.Errorf("site: parse layout %s: %w", p.Layout, err)
			}
			tmpls[p.Layout] = tmpl
		}

		out := filepath.Join(dest, filepath.FromSlash(p.URL()))
		if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
			return fmt.Errorf("site: %w", err)
		}
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("site: %w", err)
		}
		err = tmpl.Execute(f, pageView{Page: p.Data, Posts: cats[p.category()]})
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("site: render %s: %w", p.URL(), err)
		}
	}
	return nil
}
