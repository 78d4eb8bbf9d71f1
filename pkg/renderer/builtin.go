package renderer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/stretchr/objx"
)

// CallbackOption names the JSONP callback option read by the json renderer.
const CallbackOption = "callback"

// UpdateFunc is the block form accepted by the update renderer.
type UpdateFunc func(page *JSGenerator) error

func renderJSON(res *Response, value any, options objx.Map) (bool, error) {
	payload, err := encodeJSON(value)
	if err != nil {
		return false, err
	}
	if callback := callbackName(options); callback != "" {
		payload = callback + "(" + payload + ")"
	}
	res.SetContentTypeIfEmpty(MimeJSON)
	res.SetBodyString(payload)
	return true, nil
}

// callbackName returns the callback option as given, or "" when it is blank.
func callbackName(options objx.Map) string {
	name := Text(options[CallbackOption])
	if strings.TrimSpace(name) == "" {
		return ""
	}
	return name
}

func encodeJSON(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case json.RawMessage:
		return string(v), nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("render: encode json: %w", err)
	}
	return string(raw), nil
}

func renderJS(res *Response, value any, options objx.Map) (bool, error) {
	body := ""
	if converter, ok := value.(JSConverter); ok {
		converted, err := converter.ToJS(options)
		if err != nil {
			return false, err
		}
		body = converted
	} else {
		body = Text(value)
	}
	res.SetContentTypeIfEmpty(MimeJS)
	res.SetBodyString(body)
	return true, nil
}

func renderXML(res *Response, value any, options objx.Map) (bool, error) {
	body := ""
	if converter, ok := value.(XMLConverter); ok {
		converted, err := converter.ToXML(options)
		if err != nil {
			return false, err
		}
		body = converted
	} else {
		body = Text(value)
	}
	res.SetContentTypeIfEmpty(MimeXML)
	res.SetBodyString(body)
	return true, nil
}

func renderUpdate(res *Response, value any, _ objx.Map) (bool, error) {
	var block UpdateFunc
	switch fn := value.(type) {
	case UpdateFunc:
		block = fn
	case func(*JSGenerator) error:
		block = fn
	default:
		return false, fmt.Errorf("render: update expects func(*JSGenerator) error, got %T", value)
	}
	if block == nil {
		return false, errors.New("render: update block is nil")
	}

	page := NewJSGenerator(res)
	if err := block(page); err != nil {
		return false, err
	}
	if err := page.Err(); err != nil {
		return false, err
	}
	res.SetContentType(MimeJS)
	res.SetBodyString(page.String())
	return true, nil
}

// Text converts a renderer value into body text without reshaping it.
func Text(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
