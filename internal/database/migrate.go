package database

import (
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/simplebank/backend/internal/logger"
)

//go:embed schema.sql
var schema string

// Migrate creates the ledger tables if they do not exist yet.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	logger.Info("[DB] schema up to date")
	return nil
}
