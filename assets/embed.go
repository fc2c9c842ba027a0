package assets

import "embed"

// FS holds the page templates and the static files served under /static.
//
//go:embed all:public all:templates
var FS embed.FS
