// Package web holds the embedded page templates and static assets.
package web

import (
	"embed"
	"io/fs"

	"github.com/go-extras/go-kit/must"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

var (
	Templates = must.Must(fs.Sub(templatesFS, "templates"))
	Static    = must.Must(fs.Sub(staticFS, "static"))
)
