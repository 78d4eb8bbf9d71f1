package renderer

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/stretchr/objx"
	"go.uber.org/zap"
)

// BaseFunc is the default rendering path dispatch falls through to when no
// renderer handles the options.
type BaseFunc func(res *Response, options objx.Map) error

// ProcessOptionsFunc normalises or validates the options bag right before a
// matched renderer runs. Returning an error aborts dispatch.
type ProcessOptionsFunc func(res *Response, options objx.Map) error

// ControllerOption customises a Controller.
type ControllerOption func(*Controller)

// WithBase sets the fall-through render function.
func WithBase(fn BaseFunc) ControllerOption {
	return func(c *Controller) {
		c.base = fn
	}
}

// WithProcessOptions sets the options hook run before a matched renderer.
func WithProcessOptions(fn ProcessOptionsFunc) ControllerOption {
	return func(c *Controller) {
		c.processOptions = fn
	}
}

// WithControllerLogger sets the logger used to trace dispatch decisions.
func WithControllerLogger(logger *zap.Logger) ControllerOption {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Controller carries the renderer configuration for one kind of request
// handler. A controller created with Derive reads its parent's renderer set
// until its own first UseRenderers/UseAllRenderers call; from then on it owns
// an independent set and parent changes no longer reach it.
type Controller struct {
	name     string
	registry *Registry
	parent   *Controller
	own      atomic.Pointer[Set]

	base           BaseFunc
	processOptions ProcessOptionsFunc
	logger         *zap.Logger
}

// NewController creates a root controller that resolves opt-ins against reg.
func NewController(name string, reg *Registry, options ...ControllerOption) *Controller {
	c := &Controller{
		name:     name,
		registry: reg,
		logger:   zap.NewNop(),
	}
	c.apply(options)
	return c
}

// Derive creates a child controller. The child inherits the registry, base
// function, options hook and logger unless overridden by options.
func (c *Controller) Derive(name string, options ...ControllerOption) *Controller {
	child := &Controller{
		name:           name,
		registry:       c.registry,
		parent:         c,
		base:           c.base,
		processOptions: c.processOptions,
		logger:         c.logger,
	}
	child.apply(options)
	return child
}

func (c *Controller) apply(options []ControllerOption) {
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
}

// Name returns the controller name.
func (c *Controller) Name() string {
	return c.name
}

// Parent returns the controller this one was derived from, or nil.
func (c *Controller) Parent() *Controller {
	return c.parent
}

// Renderers returns the effective renderer set: the controller's own set when
// it has opted in, otherwise the nearest ancestor's.
func (c *Controller) Renderers() *Set {
	for cur := c; cur != nil; cur = cur.parent {
		if set := cur.own.Load(); set != nil {
			return set
		}
	}
	return emptySet
}

// UseRenderers opts the controller into the named renderers, snapshotting
// their current handlers from the registry. On an unknown name the controller
// keeps its previous set and *UnknownRendererError is returned.
func (c *Controller) UseRenderers(names ...string) error {
	if c.registry == nil {
		return fmt.Errorf("render: controller %q has no registry", c.name)
	}
	next, err := c.update(func(current *Set) (*Set, error) {
		return current.Use(c.registry, names...)
	})
	if err != nil {
		return err
	}
	c.logger.Debug("renderers selected",
		zap.String("controller", c.name),
		zap.Strings("renderers", next.Names()),
	)
	return nil
}

// MustUseRenderers panics when UseRenderers fails.
func (c *Controller) MustUseRenderers(names ...string) *Controller {
	if err := c.UseRenderers(names...); err != nil {
		panic(err)
	}
	return c
}

// UseAllRenderers opts the controller into every renderer registered right
// now. Renderers registered later are not picked up.
func (c *Controller) UseAllRenderers() error {
	if c.registry == nil {
		return fmt.Errorf("render: controller %q has no registry", c.name)
	}
	next, _ := c.update(func(current *Set) (*Set, error) {
		return current.UseAll(c.registry), nil
	})
	c.logger.Debug("renderers selected",
		zap.String("controller", c.name),
		zap.Strings("renderers", next.Names()),
		zap.Bool("all", true),
	)
	return nil
}

// update installs fn's result as the controller's own set. Concurrent opt-ins
// retry against the latest set so none of them is lost.
func (c *Controller) update(fn func(current *Set) (*Set, error)) (*Set, error) {
	for {
		prev := c.own.Load()
		current := prev
		if current == nil {
			current = c.inherited()
		}
		next, err := fn(current)
		if err != nil {
			return nil, err
		}
		if c.own.CompareAndSwap(prev, next) {
			return next, nil
		}
	}
}

func (c *Controller) inherited() *Set {
	if c.parent == nil {
		return emptySet
	}
	return c.parent.Renderers()
}

// Render dispatches a copy of options so the caller's map is left untouched.
func (c *Controller) Render(res *Response, options objx.Map) error {
	return c.RenderToBody(res, options.Copy())
}

// RenderToBody runs the dispatch step. The first renderer of the effective
// set, in insertion order, whose name is a key of options consumes that key
// and renders its value. Other renderer keys stay in options. When nothing
// matches, or the handler returns false, the base function receives options.
func (c *Controller) RenderToBody(res *Response, options objx.Map) error {
	handled, err := c.handleRenderOptions(res, options)
	if err != nil || handled {
		return err
	}

	if c.base == nil {
		return ErrNotRendered
	}
	c.logger.Debug("render falling through to base", zap.String("controller", c.name))
	return c.base(res, options)
}

func (c *Controller) handleRenderOptions(res *Response, options objx.Map) (bool, error) {
	if len(options) == 0 {
		return false, nil
	}
	for _, entry := range c.Renderers().Entries() {
		if _, ok := options[entry.Name]; !ok {
			continue
		}
		if c.processOptions != nil {
			if err := c.processOptions(res, options); err != nil {
				return false, err
			}
		}
		value := options[entry.Name]
		delete(options, entry.Name)

		c.logger.Debug("renderer matched",
			zap.String("controller", c.name),
			zap.String("renderer", entry.Name),
		)
		return entry.Handler(res, value, options)
	}
	return false, nil
}

// IsNotRendered reports whether err means no body was produced.
func IsNotRendered(err error) bool {
	return errors.Is(err, ErrNotRendered)
}
