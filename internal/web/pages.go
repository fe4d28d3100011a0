package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"sync"
)

// templateExt is appended to a template identifier to find its file.
const templateExt = ".html"

// PageRenderer turns template identifiers into finished HTML documents.
// Templates are executed without data, so the output for a name only changes
// when the file behind it changes. Rendered pages are cached until Invalidate.
type PageRenderer struct {
	templates fs.FS

	mux   sync.RWMutex
	cache map[string][]byte
}

// NewPageRenderer returns a renderer reading templates from the given fs.FS.
func NewPageRenderer(templates fs.FS) *PageRenderer {
	return &PageRenderer{
		templates: templates,
		cache:     make(map[string][]byte),
	}
}

// Render returns the rendered document for name. The returned slice is shared
// and must not be modified.
//
// It can safely be used by multiple goroutines.
func (p *PageRenderer) Render(name string) ([]byte, error) {
	p.mux.RLock()
	page, ok := p.cache[name]
	p.mux.RUnlock()
	if ok {
		return page, nil
	}

	page, err := p.render(name)
	if err != nil {
		return nil, err
	}

	p.mux.Lock()
	p.cache[name] = page
	p.mux.Unlock()
	return page, nil
}

func (p *PageRenderer) render(name string) ([]byte, error) {
	file := name + templateExt
	if !fs.ValidPath(file) {
		return nil, &TemplateNotFoundError{Name: name, Err: fs.ErrInvalid}
	}
	if _, err := fs.Stat(p.templates, file); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &TemplateNotFoundError{Name: name, Err: err}
		}
		return nil, fmt.Errorf("stat template %s: %w", file, err)
	}

	tmpl, err := template.ParseFS(p.templates, file)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", file, err)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, file, nil); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", file, err)
	}
	return buf.Bytes(), nil
}

// Invalidate drops every cached page. The next Render re-reads the template.
func (p *PageRenderer) Invalidate() {
	p.mux.Lock()
	p.cache = make(map[string][]byte)
	p.mux.Unlock()
}
