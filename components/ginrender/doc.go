// Package ginrender adapts renderer controllers to gin. Values stored on the
// gin context with c.Set become the view context of the response.
package ginrender
