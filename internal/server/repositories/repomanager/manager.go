package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/irispredictor/internal/dbx"
	"github.com/dmitrijs2005/irispredictor/internal/server/repositories/predictions"
)

// RepositoryManager vends repositories bound to a DBTX, so the same code runs
// against the pool or inside a transaction, and owns schema migrations.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Predictions(db dbx.DBTX) predictions.Repository
}
