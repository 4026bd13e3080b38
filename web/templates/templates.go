// Package templates holds the console's embedded html/template pages.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.tmpl
var files embed.FS

// Must parses every embedded page; panics on a malformed template, which can
// only happen at build time.
func Must() *template.Template {
	return template.Must(template.New("").ParseFS(files, "*.tmpl"))
}
