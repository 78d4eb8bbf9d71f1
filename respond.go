package respond

import (
	"github.com/goliatone/go-respond/pkg/config"
	"github.com/goliatone/go-respond/pkg/renderer"
	"github.com/goliatone/go-respond/pkg/renderers/extra"
)

// Registry aliases renderer.Registry so callers can stay on the root package
// for the common setup path.
type Registry = renderer.Registry

// Controller aliases renderer.Controller.
type Controller = renderer.Controller

// Handler aliases renderer.Handler.
type Handler = renderer.Handler

// Response aliases renderer.Response.
type Response = renderer.Response

// NewRegistry returns a catalog holding the built-in json, js, xml and update
// renderers.
func NewRegistry(options ...renderer.RegistryOption) *Registry {
	return renderer.NewRegistry(options...)
}

// NewRegistryWithExtras returns NewRegistry plus the yaml and html renderers.
func NewRegistryWithExtras(options ...renderer.RegistryOption) (*Registry, error) {
	reg := renderer.NewRegistry(options...)
	if err := extra.Register(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// NewController creates a root controller bound to reg.
func NewController(name string, reg *Registry, options ...renderer.ControllerOption) *Controller {
	return renderer.NewController(name, reg, options...)
}

// LoadControllers reads a controller configuration file and builds every
// controller it declares against reg.
func LoadControllers(reg *Registry, path string, options ...renderer.ControllerOption) (map[string]*Controller, error) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return config.Build(reg, cfg, options...)
}
