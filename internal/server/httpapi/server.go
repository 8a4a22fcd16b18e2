// Package httpapi exposes the prediction service over HTTP/JSON.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/irispredictor/internal/logging"
	"github.com/dmitrijs2005/irispredictor/internal/server/auth"
	"github.com/dmitrijs2005/irispredictor/internal/server/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Tokens exchanges credentials for an access token and validates bearer
// tokens on protected routes.
type Tokens interface {
	Issue(ctx context.Context, username, password string) (string, error)
	Validate(token string) (*auth.Claims, error)
}

// Predictor is the prediction use case behind /predict and /predictions.
type Predictor interface {
	Predict(ctx context.Context, token string, f models.FeatureVector) (*models.Prediction, error)
	List(ctx context.Context, token string, limit, offset int) ([]*models.Prediction, error)
}

const shutdownTimeout = 10 * time.Second

type Server struct {
	address   string
	router    *chi.Mux
	tokens    Tokens
	predictor Predictor
	logger    logging.Logger
	limiter   *limiterStore
}

type Option func(*Server)

// WithLoginRateLimit enables a per-client token bucket on /login.
func WithLoginRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		s.limiter = newLimiterStore(rps, burst)
	}
}

func NewServer(address string, l logging.Logger, tokens Tokens, p Predictor, opts ...Option) *Server {
	s := &Server{
		address:   address,
		router:    chi.NewRouter(),
		tokens:    tokens,
		predictor: p,
		logger:    l.With("module", "http_server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router

	r.Use(middleware.RequestID)
	r.Use(accessLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.limiter != nil {
			r.Use(rateLimit(s.limiter, s.logger))
		}
		r.Post("/login", s.handleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware(s.tokens, s.logger))
		r.Post("/predict", s.handlePredict)
		r.Get("/predictions", s.handleListPredictions)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens on the configured address until ctx is cancelled, then drains
// in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	if s.limiter != nil {
		s.limiter.startJanitor(ctx)
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
