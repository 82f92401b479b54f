// Package cli implements the interactive terminal client. It keeps a bearer
// token for the current session and drives the typed API client through a
// small REPL.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/todograph/todograph/internal/client/api"
	"github.com/todograph/todograph/internal/client/config"
)

type App struct {
	config *config.Config
	api    *api.Client
	token  string
	email  string
	reader *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	apiClient, err := api.New(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}

	return &App{config: c, api: apiClient, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) isLoggedIn() bool {
	return a.token != ""
}

func (a *App) getStatus() string {
	if a.email == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.email)
}

func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to todograph CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
