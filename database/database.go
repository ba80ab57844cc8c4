package database

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

const personsSchema = `
	CREATE TABLE IF NOT EXISTS persons (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		last_name TEXT,
		first_name TEXT,
		address TEXT,
		color INTEGER,
		group_no INTEGER
	);
	CREATE INDEX IF NOT EXISTS idx_persons_color ON persons(color);
	`

// withBusyTimeout makes every pooled connection wait on a locked database
// instead of failing with SQLITE_BUSY.
func withBusyTimeout(dsn string) string {
	if strings.Contains(dsn, "_busy_timeout") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_busy_timeout=5000"
}

func InitDB(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", withBusyTimeout(dataSourceName))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// enable write-ahead Logging for better concurrency
	_, err = db.Exec("PRAGMA journal_mode=WAL;")
	if err != nil {
		log.Printf("warning: failed to set WAL mode: %v", err)
	}

	_, err = db.Exec(personsSchema)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create persons table: %w", err)
	}

	log.Println("database initialized successfully at", dataSourceName)
	return db, nil
}
