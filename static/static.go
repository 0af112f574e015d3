// Package static holds the assets served under /static: the stylesheet
// and the OpenAPI document with its viewer page.
package static

import "embed"

//go:embed *.html *.json *.css
var Files embed.FS
