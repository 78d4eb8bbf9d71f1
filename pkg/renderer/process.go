package renderer

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/stretchr/objx"
)

// Response option keys read by ApplyResponseOptions.
const (
	StatusOption      = "status"
	ContentTypeOption = "content_type"
	LocationOption    = "location"
)

// ApplyResponseOptions is a ProcessOptionsFunc that copies the status,
// content_type and location options onto the response. The keys stay in the
// options bag.
func ApplyResponseOptions(res *Response, options objx.Map) error {
	if raw, ok := options[StatusOption]; ok && raw != nil {
		status, err := statusCode(raw)
		if err != nil {
			return err
		}
		res.Status = status
	}
	if contentType, ok := options[ContentTypeOption].(string); ok && contentType != "" {
		res.SetContentType(contentType)
	}
	if location, ok := options[LocationOption].(string); ok && location != "" {
		if res.Header == nil {
			res.Header = make(http.Header)
		}
		res.Header.Set("Location", location)
	}
	return nil
}

func statusCode(raw any) (int, error) {
	var code int
	switch v := raw.(type) {
	case int:
		code = v
	case int64:
		code = int(v)
	case float64:
		code = int(v)
	case string:
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("render: invalid status %q", v)
		}
		code = parsed
	default:
		return 0, fmt.Errorf("render: invalid status %T", raw)
	}
	// net/http panics on codes outside the three digit range.
	if code < 100 || code > 999 {
		return 0, fmt.Errorf("render: invalid status %d", code)
	}
	return code, nil
}
