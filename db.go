package main

import (
	"database/sql"
	"errors"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned by store lookups and deletes when no row matches.
var ErrNotFound = errors.New("record not found")

// ValidationError collects the user-facing messages for a rejected write.
type ValidationError []string

func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return e[0]
}

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	return db, nil
}

// applySchema runs schema.sql against the handle. Statements use
// IF NOT EXISTS, so calling it on an existing database is harmless.
func applySchema(db *sql.DB, schemaPath string) error {
	schema, err := os.ReadFile(schemaPath)
	if err != nil {
		return err
	}
	_, err = db.Exec(string(schema))
	return err
}
