// Package respond is the entry point for the renderer catalog. It re-exports
// the registry and controller constructors from pkg/renderer and wires the
// optional yaml and html renderers and file based controller configuration.
package respond
