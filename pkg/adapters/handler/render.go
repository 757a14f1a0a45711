package handler

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// descPreviewLen is how many characters of a description the admin list shows.
const descPreviewLen = 60

var pageNames = []string{"index", "admin", "edit"}

// Renderer executes the embedded page templates. Each page is parsed
// together with the shared layout.
type Renderer struct {
	pages  map[string]*template.Template
	policy *bluemonday.Policy
	log    *zap.Logger
}

func NewRenderer(log *zap.Logger) (*Renderer, error) {
	r := &Renderer{
		pages:  make(map[string]*template.Template, len(pageNames)),
		policy: bluemonday.UGCPolicy(),
		log:    log,
	}

	funcs := template.FuncMap{
		"sanitize": r.Sanitize,
		"preview": func(s string) string {
			return truncate(descPreviewLen, s)
		},
	}
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, err
		}
		r.pages[name] = t
	}
	return r, nil
}

// Sanitize strips unsafe markup from user supplied HTML.
func (r *Renderer) Sanitize(s string) template.HTML {
	return template.HTML(r.policy.Sanitize(s))
}

// Render buffers the page so a template error can still become a 500.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) {
	t, ok := r.pages[name]
	if !ok {
		r.log.Error("unknown template", zap.String("name", name))
		http.Error(w, "服务器错误", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		r.log.Error("render template", zap.String("name", name), zap.Error(err))
		http.Error(w, "服务器错误", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func truncate(n int, s string) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n])) + "..."
}
