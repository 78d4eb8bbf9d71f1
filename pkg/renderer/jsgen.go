package renderer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Insertion positions accepted by JSGenerator.InsertHTML.
const (
	InsertTop    = "top"
	InsertBottom = "bottom"
	InsertBefore = "before"
	InsertAfter  = "after"
)

// JSGenerator accumulates JavaScript statements for the update renderer. It
// targets the Prototype-style Element helpers page updates have always used.
type JSGenerator struct {
	res   *Response
	lines []string
	err   error
}

// NewJSGenerator creates a generator bound to res for view and engine access.
// res may be nil.
func NewJSGenerator(res *Response) *JSGenerator {
	return &JSGenerator{res: res}
}

// View returns the response view context.
func (g *JSGenerator) View() map[string]any {
	if g.res == nil {
		return nil
	}
	return g.res.View
}

// Template renders content with the response engine against the view
// context overlaid with data.
func (g *JSGenerator) Template(content string, data map[string]any) (string, error) {
	if g.res == nil || g.res.Engine == nil {
		return "", errors.New("render: update template requires a template engine")
	}
	merged := make(map[string]any, len(g.res.View)+len(data))
	for key, value := range g.res.View {
		merged[key] = value
	}
	for key, value := range data {
		merged[key] = value
	}
	return g.res.Engine.RenderString(content, merged)
}

// ReplaceHTML replaces the inner HTML of the element with id.
func (g *JSGenerator) ReplaceHTML(id, html string) *JSGenerator {
	return g.call("Element.update", id, html)
}

// Replace replaces the element with id, outer HTML included.
func (g *JSGenerator) Replace(id, html string) *JSGenerator {
	return g.call("Element.replace", id, html)
}

// InsertHTML inserts html relative to the element with id.
func (g *JSGenerator) InsertHTML(position, id, html string) *JSGenerator {
	switch position {
	case InsertTop, InsertBottom, InsertBefore, InsertAfter:
	default:
		g.fail(fmt.Errorf("render: invalid insert position %q", position))
		return g
	}
	return g.Raw(fmt.Sprintf("Element.insert(%s, { %s: %s })", g.arg(id), position, g.arg(html)))
}

// Remove removes the elements with the given ids.
func (g *JSGenerator) Remove(ids ...string) *JSGenerator {
	return g.Raw(fmt.Sprintf("%s.each(Element.remove)", g.arg(ids)))
}

// Show shows the elements with the given ids.
func (g *JSGenerator) Show(ids ...string) *JSGenerator {
	return g.call("Element.show", stringsToArgs(ids)...)
}

// Hide hides the elements with the given ids.
func (g *JSGenerator) Hide(ids ...string) *JSGenerator {
	return g.call("Element.hide", stringsToArgs(ids)...)
}

// Toggle toggles visibility of the elements with the given ids.
func (g *JSGenerator) Toggle(ids ...string) *JSGenerator {
	return g.call("Element.toggle", stringsToArgs(ids)...)
}

// Alert displays message in a browser alert.
func (g *JSGenerator) Alert(message string) *JSGenerator {
	return g.call("alert", message)
}

// Redirect navigates the browser to url.
func (g *JSGenerator) Redirect(url string) *JSGenerator {
	return g.Assign("window.location.href", url)
}

// Call invokes function with JSON-encoded arguments.
func (g *JSGenerator) Call(function string, args ...any) *JSGenerator {
	return g.call(function, args...)
}

// Assign sets variable to the JSON encoding of value.
func (g *JSGenerator) Assign(variable string, value any) *JSGenerator {
	return g.Raw(fmt.Sprintf("%s = %s", variable, g.arg(value)))
}

// Delay runs the statements added by block after seconds.
func (g *JSGenerator) Delay(seconds float64, block func(page *JSGenerator)) *JSGenerator {
	inner := &JSGenerator{res: g.res}
	if block != nil {
		block(inner)
	}
	if inner.err != nil {
		g.fail(inner.err)
	}
	ms := int(seconds * 1000)
	return g.Raw(fmt.Sprintf("setTimeout(function() {\n%s\n}, %d)", inner.String(), ms))
}

// Raw appends a statement verbatim. A trailing semicolon is added on output.
func (g *JSGenerator) Raw(statement string) *JSGenerator {
	statement = strings.TrimRight(strings.TrimSpace(statement), ";")
	if statement != "" {
		g.lines = append(g.lines, statement)
	}
	return g
}

// Err returns the first error recorded while building the script.
func (g *JSGenerator) Err() error {
	return g.err
}

// String returns the generated script, one statement per line.
func (g *JSGenerator) String() string {
	if len(g.lines) == 0 {
		return ""
	}
	return strings.Join(g.lines, ";\n") + ";"
}

func (g *JSGenerator) call(function string, args ...any) *JSGenerator {
	encoded := make([]string, 0, len(args))
	for _, arg := range args {
		encoded = append(encoded, g.arg(arg))
	}
	return g.Raw(fmt.Sprintf("%s(%s)", function, strings.Join(encoded, ", ")))
}

func (g *JSGenerator) arg(value any) string {
	raw, err := json.Marshal(value)
	if err != nil {
		g.fail(fmt.Errorf("render: encode update argument: %w", err))
		return "null"
	}
	return string(raw)
}

func (g *JSGenerator) fail(err error) {
	if g.err == nil {
		g.err = err
	}
}

func stringsToArgs(values []string) []any {
	out := make([]any, len(values))
	for i, value := range values {
		out[i] = value
	}
	return out
}
