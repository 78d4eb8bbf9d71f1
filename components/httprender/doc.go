// Package httprender mounts renderer controllers on net/http. An action turns
// the request into render options; the controller dispatches them and the
// resulting response is written back.
package httprender
