// Package handler is the HTTP layer of the drinks service.
//
// Handlers bind and validate the request, call the service layer and
// answer with a Directive: render a view with bound data, or redirect.
// The same directive is written as HTML for browsers and as JSON for API
// clients.
package handler
