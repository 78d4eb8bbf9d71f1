package ginrender

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/objx"
	"go.uber.org/zap"

	"github.com/goliatone/go-respond/pkg/renderer"
	"github.com/goliatone/go-respond/pkg/renderer/template"
)

// ActionFunc handles a gin request and returns its render options.
type ActionFunc func(c *gin.Context) (objx.Map, error)

type Options struct {
	Engine template.TemplateRenderer
	Logger *zap.Logger
}

type OptionFn func(*Options)

func WithEngine(engine template.TemplateRenderer) OptionFn {
	return func(o *Options) {
		o.Engine = engine
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		o.Logger = logger
	}
}

func newOptions(fns []OptionFn) Options {
	var opts Options
	for _, fn := range fns {
		if fn != nil {
			fn(&opts)
		}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}

// Render dispatches options through ctrl and writes the result to c. On
// failure the error is attached to the context, the request is aborted with
// 406 for unmatched options or 500 otherwise, and the error is returned.
func Render(c *gin.Context, ctrl *renderer.Controller, options objx.Map, fns ...OptionFn) error {
	opts := newOptions(fns)
	if ctrl == nil {
		return abort(c, errors.New("ginrender: controller is required"))
	}

	res := renderer.NewResponse(c.Request)
	res.Engine = opts.Engine
	for key, value := range c.Keys {
		res.View[key] = value
	}

	if err := ctrl.RenderToBody(res, options); err != nil {
		opts.Logger.Debug("render failed",
			zap.String("controller", ctrl.Name()),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		return abort(c, err)
	}

	header := c.Writer.Header()
	for key, values := range res.Header {
		for _, value := range values {
			header.Add(key, value)
		}
	}
	status := res.Status
	if status == 0 {
		status = http.StatusOK
	}
	contentType := res.ContentType
	if contentType == "" {
		contentType = "text/plain; charset=utf-8"
	}
	c.Data(status, contentType, res.Body)
	return nil
}

// HandlerFunc wraps action as a gin handler rendered through ctrl.
func HandlerFunc(ctrl *renderer.Controller, action ActionFunc, fns ...OptionFn) gin.HandlerFunc {
	return func(c *gin.Context) {
		if action == nil {
			_ = abort(c, errors.New("ginrender: action is required"))
			return
		}
		options, err := action(c)
		if err != nil {
			_ = abort(c, err)
			return
		}
		_ = Render(c, ctrl, options, fns...)
	}
}

func abort(c *gin.Context, err error) error {
	code := http.StatusInternalServerError
	if renderer.IsNotRendered(err) {
		code = http.StatusNotAcceptable
	}
	_ = c.Error(err)
	c.AbortWithStatus(code)
	return err
}
