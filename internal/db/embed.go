package db

import "embed"

// EmbedMigrations holds the metastore schema migrations (users, groups, the
// family/participant/sample/dataset hierarchy, analyses, and the audit log)
// compiled into the binary so deployments never depend on a migrations dir.
//
//go:embed migrations/*.sql
var EmbedMigrations embed.FS
