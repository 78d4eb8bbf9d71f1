package config

import (
	"fmt"

	"github.com/goliatone/go-respond/pkg/renderer"
)

// Build creates one renderer.Controller per declaration. Parents are built
// before their children and children are derived from them, so a child that
// lists no renderers observes its parent's set. options apply to root
// controllers and are inherited by derived ones.
func Build(reg *renderer.Registry, cfg Config, options ...renderer.ControllerOption) (map[string]*renderer.Controller, error) {
	if reg == nil {
		return nil, fmt.Errorf("config: registry is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	decls := make(map[string]Controller, len(cfg.Controllers))
	for _, decl := range cfg.Controllers {
		decls[decl.Name] = decl
	}

	built := make(map[string]*renderer.Controller, len(cfg.Controllers))
	var build func(name string) (*renderer.Controller, error)
	build = func(name string) (*renderer.Controller, error) {
		if ctrl, ok := built[name]; ok {
			return ctrl, nil
		}
		decl := decls[name]

		var ctrl *renderer.Controller
		if decl.Parent == "" {
			ctrl = renderer.NewController(decl.Name, reg, options...)
		} else {
			parent, err := build(decl.Parent)
			if err != nil {
				return nil, err
			}
			ctrl = parent.Derive(decl.Name)
		}

		if decl.All {
			if err := ctrl.UseAllRenderers(); err != nil {
				return nil, fmt.Errorf("config: controller %q: %w", decl.Name, err)
			}
		}
		if len(decl.Renderers) > 0 {
			if err := ctrl.UseRenderers(decl.Renderers...); err != nil {
				return nil, fmt.Errorf("config: controller %q: %w", decl.Name, err)
			}
		}
		built[name] = ctrl
		return ctrl, nil
	}

	for _, decl := range cfg.Controllers {
		if _, err := build(decl.Name); err != nil {
			return nil, err
		}
	}
	return built, nil
}
