package renderer

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownRenderer matches every *UnknownRendererError via errors.Is.
	ErrUnknownRenderer = errors.New("render: unknown renderer")
	// ErrNotRendered is returned by dispatch when no renderer produced a body
	// and the controller has no base render function to fall back to.
	ErrNotRendered = errors.New("render: no renderer produced a body")
)

// UnknownRendererError reports an opt-in for a name the registry does not
// know about.
type UnknownRendererError struct {
	Name string
}

func (e *UnknownRendererError) Error() string {
	return fmt.Sprintf("render: renderer %q not found", e.Name)
}

// Is lets errors.Is(err, ErrUnknownRenderer) match.
func (e *UnknownRendererError) Is(target error) bool {
	return target == ErrUnknownRenderer
}
