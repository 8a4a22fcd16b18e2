// Package cli implements the interactive client for the prediction service.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/irispredictor/internal/client/api"
	"github.com/dmitrijs2005/irispredictor/internal/client/config"
)

// apiClient is the subset of api.Client the CLI uses.
type apiClient interface {
	LoggedIn() bool
	Logout()
	Login(ctx context.Context, username, password string) error
	Predict(ctx context.Context, sepalLength, sepalWidth, petalLength, petalWidth float64) (int, error)
	List(ctx context.Context, limit, offset int) ([]api.Prediction, error)
}

type App struct {
	config *config.Config
	api    apiClient
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    api.NewClient(c.ServerURL, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

func (a *App) isLoggedIn() bool {
	return a.api.LoggedIn()
}

func (a *App) status() string {
	if a.isLoggedIn() {
		return "logged in"
	}
	return "not logged in"
}

func (a *App) Run(ctx context.Context) {
	runREPL(ctx, a, a.status, a.reader)
}
