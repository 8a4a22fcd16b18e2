// Package repomanager provides the SQL RepositoryManager, wiring repository
// constructors and database migrations (via goose) for the configured dialect.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/irispredictor/internal/dbx"
	"github.com/dmitrijs2005/irispredictor/internal/server/migrations"
	"github.com/dmitrijs2005/irispredictor/internal/server/repositories/predictions"
	"github.com/pressly/goose/v3"
)

// SQLRepositoryManager vends SQL-backed repositories for one dialect.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

var _ RepositoryManager = (*SQLRepositoryManager)(nil)

// NewSQLRepositoryManager constructs a RepositoryManager for dialect.
func NewSQLRepositoryManager(dialect dbx.Dialect) *SQLRepositoryManager {
	return &SQLRepositoryManager{dialect: dialect}
}

// Predictions returns a predictions.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Predictions(db dbx.DBTX) predictions.Repository {
	return predictions.NewSQLRepository(db, m.dialect)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations for the manager's dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.dialect.GooseDialect()); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	return gooseUpContext(ctx, db, string(m.dialect))
}
