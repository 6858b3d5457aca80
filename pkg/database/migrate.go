package database

import (
	"database/sql"
	_ "embed"

	"github.com/cockroachdb/errors"
)

//go:embed schema.sql
var schema string

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return errors.Wrap(err, "apply schema")
	}
	return nil
}
