package dbx

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect identifies the SQL engine behind a *sql.DB.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// DriverName returns the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	if d == SQLite {
		return "sqlite"
	}
	return "pgx"
}

// GooseDialect returns the name goose uses for the dialect.
func (d Dialect) GooseDialect() string {
	if d == SQLite {
		return "sqlite3"
	}
	return "postgres"
}

var positional = regexp.MustCompile(`\$\d+`)

// Rebind rewrites a query written with $N placeholders for the dialect.
// SQLite gets plain '?' markers, so arguments must appear in order.
func (d Dialect) Rebind(query string) string {
	if d != SQLite {
		return query
	}
	return positional.ReplaceAllString(query, "?")
}

// ParseDSN detects the dialect from a connection string and returns the DSN
// in the form the driver expects.
//
//	postgres://u:p@host/db      -> Postgres, unchanged
//	sqlite:///./iris.db         -> SQLite, "./iris.db"
//	sqlite://                   -> SQLite, ":memory:"
//	file:iris.db?cache=shared   -> SQLite, unchanged
func ParseDSN(dsn string) (Dialect, string, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return Postgres, dsn, nil
	case strings.HasPrefix(dsn, "sqlite:///"):
		return SQLite, strings.TrimPrefix(dsn, "sqlite:///"), nil
	case dsn == "sqlite://", dsn == ":memory:":
		return SQLite, ":memory:", nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return SQLite, strings.TrimPrefix(dsn, "sqlite://"), nil
	case strings.HasPrefix(dsn, "file:"):
		return SQLite, dsn, nil
	}
	return "", "", fmt.Errorf("unsupported database url %q", dsn)
}

// Open opens a connection pool for dsn. SQLite pools are limited to a single
// connection: the engine has one writer, and ":memory:" databases are private
// to the connection that created them.
func Open(dsn string) (*sql.DB, Dialect, error) {
	dialect, driverDSN, err := ParseDSN(dsn)
	if err != nil {
		return nil, "", err
	}

	db, err := sql.Open(dialect.DriverName(), driverDSN)
	if err != nil {
		return nil, "", fmt.Errorf("db open error: %w", err)
	}

	if dialect == SQLite {
		db.SetMaxOpenConns(1)
	}

	return db, dialect, nil
}
