// Package migrations holds the goose migrations for both supported databases.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var fs embed.FS

// Drivers understood by Up. Each one has its own directory of migrations.
const (
	Postgres = "postgres"
	SQLite   = "sqlite"
)

var dialects = map[string]string{
	Postgres: "postgres",
	SQLite:   "sqlite3",
}

// Up applies all pending migrations for driver on db.
func Up(db *sql.DB, driver string, log *slog.Logger) error {
	dialect, ok := dialects[driver]
	if !ok {
		return fmt.Errorf("migrations: unsupported driver %q", driver)
	}

	goose.SetBaseFS(fs)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(gooseLogger{log: log})

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(db, driver); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// gooseLogger routes goose output through slog.
type gooseLogger struct {
	log *slog.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	if l.log != nil {
		l.log.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
	}
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	if l.log != nil {
		l.log.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
	}
	os.Exit(1)
}
