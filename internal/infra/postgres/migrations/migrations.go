package migrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the schema and seed steps for the question bank.
var Migrations = migrate.NewMigrations()
