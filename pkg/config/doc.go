// Package config loads controller renderer declarations from JSON or YAML and
// turns them into renderer.Controller values bound to a registry.
package config
