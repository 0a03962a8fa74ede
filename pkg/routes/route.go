// Package routes declares HTTP endpoints as data: routes grouped under
// shared prefixes and registered onto a standard ServeMux with method
// patterns.
package routes

import "net/http"

// Route binds an HTTP method and pattern to a handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}
