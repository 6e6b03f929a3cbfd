// Package migrations embebe los esquemas SQL versionados.
package migrations

import "embed"

//go:embed postgres/*.sql
var Postgres embed.FS
