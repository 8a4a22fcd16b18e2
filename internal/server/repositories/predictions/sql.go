package predictions

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/irispredictor/internal/dbx"
	"github.com/dmitrijs2005/irispredictor/internal/server/models"
)

// SQLRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx)
// for PostgreSQL and SQLite.
type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

var _ Repository = (*SQLRepository)(nil)

// NewSQLRepository constructs a repository bound to the given DBTX.
func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

// Create inserts a row and fills in ID and CreatedAt. created_at comes from
// the column default, so it is assigned by the database in commit order with id.
func (r *SQLRepository) Create(ctx context.Context, p *models.Prediction) error {
	query := `
		INSERT INTO predictions (sepal_length, sepal_width, petal_length, petal_width, predicted_class)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	var class sql.NullInt64
	if p.PredictedClass != nil {
		class = sql.NullInt64{Int64: int64(*p.PredictedClass), Valid: true}
	}

	f := p.Features
	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query),
		f.SepalLength, f.SepalWidth, f.PetalLength, f.PetalWidth, class).
		Scan(&p.ID, timestamp{&p.CreatedAt})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) List(ctx context.Context, limit, offset int) ([]*models.Prediction, error) {
	query := `
		SELECT id, sepal_length, sepal_width, petal_length, petal_width, predicted_class, created_at
		FROM predictions
		ORDER BY id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to select predictions: %w", err)
	}
	defer rows.Close()

	result := []*models.Prediction{}
	for rows.Next() {
		var (
			item  models.Prediction
			class sql.NullInt64
		)
		if err := rows.Scan(
			&item.ID,
			&item.Features.SepalLength, &item.Features.SepalWidth,
			&item.Features.PetalLength, &item.Features.PetalWidth,
			&class, timestamp{&item.CreatedAt},
		); err != nil {
			return nil, err
		}
		if class.Valid {
			c := int(class.Int64)
			item.PredictedClass = &c
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
