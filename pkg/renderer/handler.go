package renderer

import "github.com/stretchr/objx"

// Built-in renderer identifiers.
const (
	JSON   = "json"
	JS     = "js"
	XML    = "xml"
	Update = "update"
)

// Content types set by the built-in renderers.
const (
	MimeJSON = "application/json"
	MimeJS   = "text/javascript"
	MimeXML  = "application/xml"
)

// Handler renders value onto res. The options bag holds whatever the caller
// passed to render minus the renderer's own key. Returning false signals that
// nothing was produced and dispatch should fall through to the base renderer.
type Handler func(res *Response, value any, options objx.Map) (bool, error)

// Entry pairs a renderer name with its handler.
type Entry struct {
	Name    string
	Handler Handler
}

// JSConverter is implemented by values that know how to express themselves
// as JavaScript for the js renderer.
type JSConverter interface {
	ToJS(options objx.Map) (string, error)
}

// XMLConverter is implemented by values that know how to express themselves
// as XML for the xml renderer.
type XMLConverter interface {
	ToXML(options objx.Map) (string, error)
}
