// Package static holds the page assets embedded in the server binary.
package static

import "embed"

//go:embed *.js *.css
var FS embed.FS
