package java

import (
	"bytes"
	"embed"
	"fmt"
	"strconv"
	"text/template"
)

// Template ids.
const (
	EnumTemplate      = "enum.java.tmpl"
	MessageTemplate   = "message.java.tmpl"
	InterfaceTemplate = "interface.java.tmpl"
)

//go:embed templates/*.java.tmpl
var templateFS embed.FS

// TemplateEngine renders a named template against data.
type TemplateEngine interface {
	Render(id string, data any) (string, error)
}

// Templates is the TemplateEngine backed by the embedded Java templates.
// It is safe for concurrent use once constructed.
type Templates struct {
	tmpl *template.Template
}

var templateFuncs = template.FuncMap{
	"bool":   Bool,
	"setter": SetterName,
	"quote":  strconv.Quote,
	"last":   func(i, n int) bool { return i == n-1 },
}

// NewTemplates parses the embedded templates.
func NewTemplates() (*Templates, error) {
	tmpl, err := template.New("java").
		Funcs(templateFuncs).
		Option("missingkey=error").
		ParseFS(templateFS, "templates/*.java.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse java templates: %w", err)
	}
	return &Templates{tmpl: tmpl}, nil
}

// MustNewTemplates is like NewTemplates but panics on error.
func MustNewTemplates() *Templates {
	t, err := NewTemplates()
	if err != nil {
		panic(err)
	}
	return t
}

// Render executes the template named id.
func (t *Templates) Render(id string, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.tmpl.ExecuteTemplate(&buf, id, data); err != nil {
		return "", fmt.Errorf("render %s: %w", id, err)
	}
	return buf.String(), nil
}
