// Package server initializes and runs the prediction service: it opens the
// store, applies migrations, wires services and serves HTTP until a shutdown
// signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/irispredictor/internal/dbx"
	"github.com/dmitrijs2005/irispredictor/internal/logging"
	"github.com/dmitrijs2005/irispredictor/internal/server/auth"
	"github.com/dmitrijs2005/irispredictor/internal/server/cache"
	"github.com/dmitrijs2005/irispredictor/internal/server/classifier"
	"github.com/dmitrijs2005/irispredictor/internal/server/config"
	"github.com/dmitrijs2005/irispredictor/internal/server/credentials"
	"github.com/dmitrijs2005/irispredictor/internal/server/httpapi"
	"github.com/dmitrijs2005/irispredictor/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/irispredictor/internal/server/services"
)

// logOutput is where the JSON logger writes; tests redirect it.
var logOutput io.Writer = os.Stdout

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	predictions *services.PredictionService
	server      *httpapi.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.NewJSON(logOutput, level)

	model, err := classifier.Load(c.ModelPath)
	if err != nil {
		return nil, err
	}

	signer, err := auth.NewSigner([]byte(c.SecretKey), c.SigningAlgorithm, c.AccessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("token signer: %w", err)
	}

	creds, err := credentials.NewStaticStore(c.TestUsername, c.TestPassword)
	if err != nil {
		return nil, fmt.Errorf("credentials: %w", err)
	}

	db, dialect, err := dbx.Open(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewSQLRepositoryManager(dialect)
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	tokens := services.NewTokenService(creds, signer)
	predictions := services.NewPredictionService(db, rm, tokens, cache.New(cache.DefaultShards), model, logger)

	srv := httpapi.NewServer(c.EndpointAddrHTTP, logger, tokens, predictions,
		httpapi.WithLoginRateLimit(c.LoginRateLimit, c.LoginRateBurst))

	logger.Info(ctx, "app initialized",
		"dialect", string(dialect), "model", model.Name(), "algorithm", c.SigningAlgorithm, "token_ttl", signer.TTL().String())

	return &App{config: c, logger: logger, db: db, predictions: predictions, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until a signal arrives or the server fails, then closes the
// database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	err := app.server.Run(ctx)

	st := app.predictions.CacheStats()
	app.logger.Info(context.Background(), "Stopping app...",
		"cache_hits", st.Hits, "cache_misses", st.Misses, "cache_entries", st.Entries)

	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(context.Background(), "db close error", "error", cerr)
	}
	return err
}
