// Package web holds the embedded static assets for the landing page.
package web

import _ "embed"

// Index is the landing page served at /.
//
//go:embed index.html
var Index []byte
