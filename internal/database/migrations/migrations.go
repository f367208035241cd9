// Package migrations embeds the goose schema migrations for every supported
// backend. Each backend has its own directory because the DDL differs.
package migrations

import "embed"

//go:embed sqlite/*.sql mysql/*.sql postgres/*.sql
var FS embed.FS
