package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/irispredictor/internal/common"
	"github.com/dmitrijs2005/irispredictor/internal/dbx"
	"github.com/dmitrijs2005/irispredictor/internal/logging"
	"github.com/dmitrijs2005/irispredictor/internal/server/cache"
	"github.com/dmitrijs2005/irispredictor/internal/server/classifier"
	"github.com/dmitrijs2005/irispredictor/internal/server/models"
	"github.com/dmitrijs2005/irispredictor/internal/server/repositories/repomanager"
)

// PredictionService classifies feature vectors and records every request.
type PredictionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      TokenValidator
	cache       *cache.Cache
	classifier  classifier.Classifier
	logger      logging.Logger
}

// NewPredictionService wires a PredictionService.
func NewPredictionService(
	db *sql.DB,
	m repomanager.RepositoryManager,
	tokens TokenValidator,
	c *cache.Cache,
	cl classifier.Classifier,
	logger logging.Logger,
) *PredictionService {
	return &PredictionService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		cache:       c,
		classifier:  cl,
		logger:      logger.With("module", "predictions"),
	}
}

// Predict validates token, returns the memoized or freshly computed label and
// appends an audit row. Every successful call adds exactly one row, cache hit
// or not. If the insert fails the transaction is rolled back and the error
// wraps common.ErrPersistence; a label computed on this call stays cached.
func (s *PredictionService) Predict(ctx context.Context, token string, f models.FeatureVector) (*models.Prediction, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	label, hit, err := s.cache.GetOrCompute(f, func() (int, error) {
		return s.classifier.Classify(f)
	})
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}

	p := models.NewPrediction(f, label)
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Predictions(tx).Create(ctx, p)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}

	s.logger.Debug(ctx, "prediction recorded",
		"id", p.ID, "class", label, "cache_hit", hit, "subject", claims.Subject)
	return p, nil
}

// List validates token and returns up to limit records, newest first,
// skipping offset. Negative limit or offset is common.ErrValidation.
func (s *PredictionService) List(ctx context.Context, token string, limit, offset int) ([]*models.Prediction, error) {
	if _, err := s.tokens.Validate(token); err != nil {
		return nil, err
	}
	if limit < 0 || offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset must be non-negative", common.ErrValidation)
	}

	items, err := s.repomanager.Predictions(s.db).List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}
	return items, nil
}

// CacheStats exposes memoization counters for logging.
func (s *PredictionService) CacheStats() cache.Stats {
	return s.cache.Stats()
}
