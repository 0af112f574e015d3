// Package errs defines the error shapes returned to clients.
//
// Every failure that reaches the HTTP layer is expressed as an
// *HTTPError so JSON clients receive a consistent body and the HTML
// error page has a status, code and message to show.
package errs
