package bindery

import _ "embed"

// Version is the library version, sourced from the VERSION file at build time.
//
//go:embed VERSION
var Version string
