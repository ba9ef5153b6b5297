// Package render compiles the fixed page template against a content section
// set. The renderer is stateless: the template is parsed once at
// construction and every Render call is pure.
package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"regexp"
	"strconv"

	"github.com/siher/webpage-publisher/internal/core/domain"
)

//go:embed template/index.html.tmpl
var pageTemplate string

// Error reports a template/content mismatch. Line is the template line the
// failure occurred on, or 0 when the engine did not report one. It is a
// caller-correctable input problem, distinct from validation and storage
// failures.
type Error struct {
	Line   int
	Detail string
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("template render failed at line %d: %s", e.Line, e.Detail)
	}
	return fmt.Sprintf("template render failed: %s", e.Detail)
}

// errLocation matches the "name:line:column" locator html/template embeds in
// its error messages.
var errLocation = regexp.MustCompile(`:(\d+)(?::\d+)?:`)

// Renderer renders content sections into a standalone HTML page.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded page template. A parse failure means the shipped
// template itself is broken, so it is returned rather than deferred to the
// first Render call.
func New() (*Renderer, error) {
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render executes the template against sections and returns the HTML string.
// Failures come back as *Error with the line locator when available.
func (r *Renderer) Render(sections domain.ContentSections) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, sections); err != nil {
		return "", &Error{Line: extractLine(err), Detail: err.Error()}
	}
	return buf.String(), nil
}

func extractLine(err error) int {
	m := errLocation.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	line, _ := strconv.Atoi(m[1])
	return line
}
