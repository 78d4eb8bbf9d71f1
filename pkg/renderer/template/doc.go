// Package template defines the template engine seam used by the update
// renderer to build HTML fragments against a response's view context.
package template
