// Package predictions declares the prediction store contract and its SQL
// implementation.
package predictions

import (
	"context"

	"github.com/dmitrijs2005/irispredictor/internal/server/models"
)

// Repository is the append-mostly store of prediction audit rows.
type Repository interface {
	// Create inserts p and fills in the store-assigned ID.
	Create(ctx context.Context, p *models.Prediction) error

	// List returns rows ordered by id descending, skipping offset rows and
	// returning at most limit.
	List(ctx context.Context, limit, offset int) ([]*models.Prediction, error)
}
