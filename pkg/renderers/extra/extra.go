package extra

import (
	"fmt"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/objx"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-respond/pkg/renderer"
)

// Renderer identifiers.
const (
	YAML = "yaml"
	HTML = "html"
)

// Content types set by the extra renderers.
const (
	MimeYAML = "application/x-yaml"
	MimeHTML = "text/html; charset=utf-8"
)

// SanitizeOption disables html sanitising when set to false.
const SanitizeOption = "sanitize"

var (
	htmlPolicyOnce sync.Once
	htmlPolicy     *bluemonday.Policy
)

// Register adds the yaml and html renderers to reg.
func Register(reg *renderer.Registry) error {
	if reg == nil {
		return fmt.Errorf("extra: registry is required")
	}
	if err := reg.Register(YAML, RenderYAML); err != nil {
		return err
	}
	return reg.Register(HTML, RenderHTML)
}

// RenderYAML writes value as a YAML document. Strings are treated as already
// encoded.
func RenderYAML(res *renderer.Response, value any, _ objx.Map) (bool, error) {
	var body string
	switch v := value.(type) {
	case string:
		body = v
	case []byte:
		body = string(v)
	default:
		raw, err := yaml.Marshal(value)
		if err != nil {
			return false, fmt.Errorf("extra: encode yaml: %w", err)
		}
		body = string(raw)
	}
	res.SetContentTypeIfEmpty(MimeYAML)
	res.SetBodyString(body)
	return true, nil
}

// RenderHTML writes value as an HTML fragment filtered through a user
// generated content policy, unless the sanitize option is false.
func RenderHTML(res *renderer.Response, value any, options objx.Map) (bool, error) {
	body := renderer.Text(value)
	if sanitize, ok := options[SanitizeOption].(bool); !ok || sanitize {
		body = strings.TrimSpace(sanitizer().Sanitize(body))
	}
	res.SetContentTypeIfEmpty(MimeHTML)
	res.SetBodyString(body)
	return true, nil
}

func sanitizer() *bluemonday.Policy {
	htmlPolicyOnce.Do(func() {
		htmlPolicy = bluemonday.UGCPolicy()
	})
	return htmlPolicy
}
