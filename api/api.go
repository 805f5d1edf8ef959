// Package api carries the REST contract so binaries can serve it from any
// working directory.
package api

import _ "embed"

// OpenAPI is the contents of openapi.yaml.
//
//go:embed openapi.yaml
var OpenAPI []byte
