// Package server initializes and runs the main application server.
// It opens the database, applies migrations, wires the services, handles
// graceful shutdown, and starts the HTTP server for the graph endpoint.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/todograph/todograph/internal/logging"
	"github.com/todograph/todograph/internal/server/auth"
	"github.com/todograph/todograph/internal/server/config"
	gql "github.com/todograph/todograph/internal/server/graphql"
	"github.com/todograph/todograph/internal/server/repositories/repomanager"
	"github.com/todograph/todograph/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	codec       *auth.Codec
	userService *services.UserService
	todoService *services.TodoService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	codec := auth.NewCodec(c.SecretKey, c.TokenValidityDuration)

	us := services.NewUserService(db, m, codec)
	ts := services.NewTodoService(db, m)

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		codec:       codec,
		userService: us,
		todoService: ts,
	}, nil
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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := gql.NewServer(app.config.EndpointAddr, app.logger, app.userService, app.todoService, app.codec)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
