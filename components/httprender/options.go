package httprender

import (
	"net/http"

	"github.com/stretchr/objx"
	"go.uber.org/zap"

	"github.com/goliatone/go-respond/pkg/renderer/template"
)

// ActionFunc handles a request and returns the render options for it.
type ActionFunc func(r *http.Request) (objx.Map, error)

// ViewFunc supplies the view context for a request.
type ViewFunc func(r *http.Request) map[string]any

// ErrorFunc writes an error response.
type ErrorFunc func(w http.ResponseWriter, r *http.Request, err error)

type Options struct {
	RoutePath string
	Methods   []string
	View      ViewFunc
	Engine    template.TemplateRenderer
	OnError   ErrorFunc
	Logger    *zap.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath: "/",
		Methods:   []string{http.MethodGet, http.MethodHead},
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/"
	}
	if len(opts.Methods) == 0 {
		opts.Methods = []string{http.MethodGet, http.MethodHead}
	} else {
		opts.Methods = append([]string{}, opts.Methods...)
	}
	if opts.OnError == nil {
		opts.OnError = WriteError
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithMethods(methods ...string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Methods = append([]string{}, methods...)
	}
}

func WithViewFunc(fn ViewFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.View = fn
	}
}

func WithEngine(engine template.TemplateRenderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Engine = engine
	}
}

func WithErrorHandler(fn ErrorFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.OnError = fn
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}
