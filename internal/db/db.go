package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	_ "modernc.org/sqlite"
)

// connPragmas ride the DSN so that every connection the pool opens applies
// them. A one-off Exec("PRAGMA ...") would only configure whichever
// connection happened to serve it; comment cleanup depends on foreign_keys
// being enforced on the connection that runs the task delete.
const connPragmas = "_pragma=foreign_keys(1)"

// memoryDBSeq names in-memory databases so each OpenDB(":memory:") call
// gets its own.
var memoryDBSeq atomic.Int64

// OpenDB opens the SQLite database at path, creating parent directories as
// needed, and runs migrations. ":memory:" opens a fresh in-memory database;
// it is named and shared-cache so all of the pool's connections see the
// same data instead of one private database each.
func OpenDB(path string) (*sql.DB, error) {
	var dsn string
	if path == ":memory:" {
		dsn = fmt.Sprintf("file:ganttd-mem-%d?mode=memory&cache=shared&%s",
			memoryDBSeq.Add(1), connPragmas)
	} else {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
		// WAL only applies to file-backed databases.
		dsn = "file:" + path + "?" + connPragmas + "&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}
