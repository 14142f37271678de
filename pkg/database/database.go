package database

import (
	"database/sql"
	"embed"
	"fmt"
	"path"
	"sort"

	_ "github.com/mattn/go-sqlite3"

	"github.com/alimgiray/prpoints/pkg/logger"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Open opens (creating if needed) the SQLite audit database at dbPath and applies
// the bundled migrations
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=ON&_busy_timeout=30000")
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if err = optimizeDatabase(db); err != nil {
		db.Close()
		return nil, err
	}

	if err = RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	logger.WithField("path", dbPath).Debug("Audit database ready")
	return db, nil
}

// optimizeDatabase configures SQLite pragmas for a short-lived single-writer process
func optimizeDatabase(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=30000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return nil
}

// RunMigrations executes the embedded SQL scripts in file name order
func RunMigrations(db *sql.DB) error {
	entries, err := migrations.ReadDir("migrations")
	if err != nil {
		return err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if path.Ext(entry.Name()) == ".sql" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		script, err := migrations.ReadFile(path.Join("migrations", name))
		if err != nil {
			return err
		}

		if _, err = db.Exec(string(script)); err != nil {
			return fmt.Errorf("migration %s: %w", name, err)
		}

		logger.Debugf("Executed SQL script: %s", name)
	}

	return nil
}
