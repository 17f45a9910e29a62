// Package migrations embeds the goose SQL migrations for each supported backend
package migrations

import "embed"

// FS holds postgres/*.sql and sqlite/*.sql
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS

// Directory names inside FS
const (
	DirPostgres = "postgres"
	DirSQLite   = "sqlite"
)
