package db

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL embed.FS

// Open opens (or creates) a snapshot database, applies the schema and the
// pragmas used for bulk inserts.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	schema, err := fs.ReadFile(schemaSQL, "schema.sql")
	if err != nil {
		return nil, fmt.Errorf("read embedded schema.sql: %w", err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		db.Close()
		return nil, fmt.Errorf("execute schema: %w", err)
	}

	pragmas := []string{
		"PRAGMA synchronous = FULL;",
		"PRAGMA journal_mode = WAL;",
		"PRAGMA temp_store = MEMORY;",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	return db, nil
}
