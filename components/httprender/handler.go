package httprender

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-respond/pkg/renderer"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// Handler builds a net/http handler that runs action and dispatches the
// returned options through ctrl.
func Handler(ctrl *renderer.Controller, action ActionFunc, fns ...OptionFn) http.Handler {
	return HandlerWithOptions(ctrl, action, NewOptions(fns...))
}

// HandlerWithOptions builds a handler from a pre-constructed Options value.
// Callers are expected to pass an Options value produced by NewOptions (or
// equivalent) so defaults apply.
func HandlerWithOptions(ctrl *renderer.Controller, action ActionFunc, opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	allow := strings.Join(opts.Methods, ", ")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if !allowed(opts.Methods, r.Method) {
			w.Header().Set("Allow", allow)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if ctrl == nil || action == nil {
			opts.OnError(w, r, StatusError{Code: http.StatusInternalServerError, Err: errors.New("httprender: controller and action are required")})
			return
		}

		options, err := action(r)
		if err != nil {
			opts.OnError(w, r, err)
			return
		}

		res := renderer.NewResponse(r)
		res.Engine = opts.Engine
		if opts.View != nil {
			for key, value := range opts.View(r) {
				res.View[key] = value
			}
		}

		if err := ctrl.RenderToBody(res, options); err != nil {
			opts.Logger.Debug("render failed",
				zap.String("controller", ctrl.Name()),
				zap.String("path", r.URL.Path),
				zap.Error(err),
			)
			opts.OnError(w, r, err)
			return
		}
		if err := res.WriteTo(w); err != nil {
			opts.Logger.Warn("write response", zap.String("path", r.URL.Path), zap.Error(err))
		}
	})
}

// WriteError maps err onto a plain-text status response. HTTPError values
// choose their own status; ErrNotRendered maps to 406.
func WriteError(w http.ResponseWriter, _ *http.Request, err error) {
	if w == nil {
		return
	}
	code := http.StatusInternalServerError
	var httpErr HTTPError
	switch {
	case err == nil:
	case errors.As(err, &httpErr) && httpErr != nil:
		code = httpErr.StatusCode()
	case renderer.IsNotRendered(err):
		code = http.StatusNotAcceptable
	}
	http.Error(w, http.StatusText(code), code)
}

func allowed(methods []string, method string) bool {
	for _, candidate := range methods {
		if strings.EqualFold(candidate, method) {
			return true
		}
	}
	return false
}
