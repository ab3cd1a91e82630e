package database

import "embed"

// MigrationsFS holds the versioned index migrations, in golang-migrate's
// MongoDB JSON command format.
//
//go:embed migrations/*.json
var MigrationsFS embed.FS

// MigrationsPath is the directory inside MigrationsFS.
const MigrationsPath = "migrations"
