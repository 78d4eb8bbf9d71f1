// Package extra provides optional renderers that are not part of the built-in
// catalog: yaml documents and sanitised html fragments. Call Register on a
// renderer.Registry during bootstrap, then opt controllers into the names.
package extra
