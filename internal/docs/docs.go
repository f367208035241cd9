// Package docs embeds the OpenAPI description served at /api/docs.
package docs

import _ "embed"

//go:embed openapi.yaml
var OpenAPI []byte
