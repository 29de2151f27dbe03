// Package web provides the embedded templates and static assets for the
// front-end pages.
package web

import "embed"

//go:embed templates static
var Assets embed.FS
