package renderer

import (
	"net/http"
	"strconv"

	"github.com/goliatone/go-respond/pkg/renderer/template"
)

const defaultContentType = "text/plain; charset=utf-8"

// Response is the request-scoped context handlers write to. Adapters build one
// per request, run dispatch, then flush it with WriteTo.
type Response struct {
	Status      int
	ContentType string
	Header      http.Header
	Body        []byte

	// View holds the values templates and update blocks can see.
	View map[string]any
	// Engine renders template strings for JSGenerator.Template. Optional.
	Engine template.TemplateRenderer
	// Request is the inbound request, when there is one.
	Request *http.Request

	rendered bool
}

// NewResponse creates an empty response bound to req. req may be nil.
func NewResponse(req *http.Request) *Response {
	return &Response{
		Header:  make(http.Header),
		View:    make(map[string]any),
		Request: req,
	}
}

// SetContentType overwrites the content type.
func (r *Response) SetContentType(contentType string) {
	r.ContentType = contentType
}

// SetContentTypeIfEmpty sets the content type only when none is set yet.
func (r *Response) SetContentTypeIfEmpty(contentType string) {
	if r.ContentType == "" {
		r.ContentType = contentType
	}
}

// SetBody stores body and marks the response as rendered.
func (r *Response) SetBody(body []byte) {
	r.Body = body
	r.rendered = true
}

// SetBodyString is SetBody for text payloads.
func (r *Response) SetBodyString(body string) {
	r.SetBody([]byte(body))
}

// Rendered reports whether a body was set.
func (r *Response) Rendered() bool {
	return r.rendered
}

// WriteTo flushes headers, status and body to w. Statuses that forbid a
// body (1xx, 204 and 304) and HEAD requests get headers only.
func (r *Response) WriteTo(w http.ResponseWriter) error {
	header := w.Header()
	for key, values := range r.Header {
		for _, value := range values {
			header.Add(key, value)
		}
	}

	status := r.Status
	if status <= 0 {
		status = http.StatusOK
	}

	contentType := r.ContentType
	if contentType == "" {
		contentType = defaultContentType
	}
	header.Set("Content-Type", contentType)

	if !bodyAllowed(status) {
		header.Del("Content-Length")
		w.WriteHeader(status)
		return nil
	}
	header.Set("Content-Length", strconv.Itoa(len(r.Body)))
	w.WriteHeader(status)

	if r.Request != nil && r.Request.Method == http.MethodHead {
		return nil
	}
	_, err := w.Write(r.Body)
	return err
}

func bodyAllowed(status int) bool {
	switch {
	case status >= 100 && status <= 199:
		return false
	case status == http.StatusNoContent, status == http.StatusNotModified:
		return false
	}
	return true
}
