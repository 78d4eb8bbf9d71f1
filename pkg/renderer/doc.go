// Package renderer maps symbolic renderer names ("json", "xml", "js",
// "update", ...) to handlers and dispatches a controller's render options to
// the first matching handler.
//
// Three pieces cooperate:
//
//   - Registry is the shared catalog of every known renderer. It is created
//     once at bootstrap, injected wherever controllers are built, and is safe
//     for concurrent registration and lookup.
//   - Set is an immutable, ordered subset of the catalog. Every write returns
//     a new Set, so a Set can be shared between goroutines and controllers
//     without copying.
//   - Controller owns a Set (or inherits its parent's until it opts in) and
//     implements the dispatch step through RenderToBody.
//
// Handlers write the response body and content type onto a *Response. When no
// renderer key is present in the options, or the matched handler reports that
// it produced nothing, dispatch falls through to the controller's base render
// function.
package renderer
