package web

import (
	"embed"
	"fmt"
	"html"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"gradjobs/internal/tracker"
)

//go:embed templates/*.html
var templateFS embed.FS

// pages are rendered inside layout.html.
var pages = []string{
	"tracker.html",
	"job.html",
	"applications.html",
	"notfound.html",
	"placeholder.html",
}

// Renderer executes the embedded page templates.
type Renderer struct {
	pages  map[string]*template.Template
	policy *bluemonday.Policy
}

// NewRenderer parses every page together with the shared layout.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{
		pages:  make(map[string]*template.Template, len(pages)),
		policy: bluemonday.UGCPolicy(),
	}
	funcs := template.FuncMap{
		"richText":    r.RichText,
		"statusLabel": func(s tracker.Status) string { return s.Label() },
		"statuses":    tracker.Statuses,
		"appliedOn":   appliedOn,
		"dict":        dict,
	}
	for _, page := range pages {
		t, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// Render writes page to w.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// RichText turns a posting's description into safe HTML. Markup is run
// through the UGC policy; plain text becomes paragraphs, with "•" lines
// collected into lists.
func (r *Renderer) RichText(s string) template.HTML {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if strings.Contains(s, "<") {
		return template.HTML(r.policy.Sanitize(s))
	}
	return template.HTML(plainToHTML(s))
}

func plainToHTML(s string) string {
	var b strings.Builder
	for _, block := range strings.Split(s, "\n\n") {
		var para, items []string
		for _, line := range strings.Split(block, "\n") {
			line = strings.TrimSpace(line)
			switch {
			case line == "":
			case strings.HasPrefix(line, "•"):
				items = append(items, strings.TrimSpace(strings.TrimPrefix(line, "•")))
			default:
				para = append(para, line)
			}
		}
		if len(para) > 0 {
			b.WriteString("<p>")
			b.WriteString(html.EscapeString(strings.Join(para, " ")))
			b.WriteString("</p>")
		}
		if len(items) > 0 {
			b.WriteString("<ul>")
			for _, it := range items {
				b.WriteString("<li>")
				b.WriteString(html.EscapeString(it))
				b.WriteString("</li>")
			}
			b.WriteString("</ul>")
		}
	}
	return b.String()
}

// dict builds a map from alternating keys and values so a sub-template can
// take more than one argument.
func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
		}
		m[k] = kv[i+1]
	}
	return m, nil
}

// appliedOn formats DateApplied for the applications table.
func appliedOn(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.Local().Format("02/01/2006")
}
