package migrations

import "embed"

// FS migraciones SQL de la base de datos, aplicadas en orden de nombre.
//
//go:embed *.sql
var FS embed.FS
