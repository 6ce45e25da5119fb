// Package render produces the schema document from a RenderContext.
package render

import (
	"bytes"
	"embed"
	"encoding/xml"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"text/template"

	"github.com/kailas-cloud/schemagen/internal/domain"
	"github.com/kailas-cloud/schemagen/internal/domain/schema"
	"github.com/kailas-cloud/schemagen/internal/domain/server"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	commonTemplate = "templates/_common.tmpl"
	tierSuffix     = ".xml.tmpl"
)

var funcs = template.FuncMap{
	"attr":    escapeAttr,
	"comment": escapeComment,
}

// Renderer holds one parsed template set per server tier.
type Renderer struct {
	templates map[server.Tier]*template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	return NewFromFS(templateFS, "templates")
}

// NewFromFS parses "<dir>/solr_*.xml.tmpl", each together with "<dir>/_common.tmpl".
func NewFromFS(fsys fs.FS, dir string) (*Renderer, error) {
	files, err := fs.Glob(fsys, path.Join(dir, "solr_*"+tierSuffix))
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	common := path.Join(dir, path.Base(commonTemplate))
	r := &Renderer{templates: make(map[server.Tier]*template.Template, len(files))}
	for _, f := range files {
		name := path.Base(f)
		t, err := template.New(name).Funcs(funcs).Option("missingkey=error").ParseFS(fsys, common, f)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[server.Tier(strings.TrimSuffix(name, tierSuffix))] = t
	}
	return r, nil
}

// Tiers lists the tiers that have a template, sorted.
func (r *Renderer) Tiers() []server.Tier {
	out := make([]server.Tier, 0, len(r.templates))
	for t := range r.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Render executes the template for key. There is no fallback to another tier.
func (r *Renderer) Render(key server.Tier, c schema.RenderContext) (string, error) {
	t, ok := r.templates[key]
	if !ok {
		return "", fmt.Errorf("%w: no schema template for %s (unsupported server generation)",
			domain.ErrConfiguration, key)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, c); err != nil {
		return "", fmt.Errorf("render %s: %w", key, err)
	}
	return buf.String(), nil
}

func escapeAttr(s string) (string, error) {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return "", err
	}
	return b.String(), nil
}

// escapeComment makes s safe inside an XML comment, where "--" is not allowed.
func escapeComment(s string) (string, error) {
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return escapeAttr(s)
}
