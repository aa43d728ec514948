package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"personalblog/internal/auth"
	"personalblog/internal/middleware"
	"personalblog/internal/models"
)

var pages = []string{
	"index.html",
	"about.html",
	"contact.html",
	"register.html",
	"login.html",
	"post.html",
	"make-post.html",
	"user.html",
	"error.html",
}

// pageData is the value every template is executed with.
type pageData struct {
	Identity models.Identity
	Flash    string
	Error    string
	Year     int

	Form   any
	Errors map[string]string

	Posts    []models.Post
	Post     *models.Post
	Comments []models.Comment
	Author   *models.User

	Editing        bool
	PostID         string
	UploadsEnabled bool

	Status     int
	StatusText string
	Message    string
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("January 2, 2006")
	},
	"ago": func(t time.Time) string {
		return humanize.Time(t)
	},
	"paragraphs": paragraphs,
}

// paragraphs splits a post body on blank lines.
func paragraphs(body string) []string {
	body = strings.ReplaceAll(body, "\r\n", "\n")

	var out []string
	for _, p := range strings.Split(body, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type renderer struct {
	pages map[string]*template.Template
}

func newRenderer(fsys fs.FS) (*renderer, error) {
	r := &renderer{pages: make(map[string]*template.Template, len(pages))}

	for _, page := range pages {
		t, err := template.New(page).Funcs(funcs).ParseFS(fsys, "layout.html", page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		r.pages[page] = t
	}

	return r, nil
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, page string, data *pageData) {
	t, ok := h.views.pages[page]
	if !ok {
		log.Printf("Unknown template %s", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if data == nil {
		data = &pageData{}
	}
	data.Identity = auth.IdentityFrom(r.Context())
	data.Flash = middleware.PopFlash(w, r)
	data.Year = time.Now().Year()

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		log.Printf("Failed to render %s: %v", page, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (h *Handlers) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.render(w, r, status, "error.html", &pageData{
		Status:     status,
		StatusText: http.StatusText(status),
		Message:    message,
	})
}
