package graphql

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/todograph/todograph/internal/logging"
	"github.com/todograph/todograph/internal/server/auth"
	"github.com/todograph/todograph/internal/server/services"
)

// Server owns the HTTP listener for the graph endpoint.
type Server struct {
	address string
	logger  logging.Logger
	handler *Handler
}

func NewServer(address string, l logging.Logger, users *services.UserService, todos *services.TodoService, codec *auth.Codec) (*Server, error) {
	schema, err := NewSchema(users, todos)
	if err != nil {
		return nil, err
	}

	return &Server{
		address: address,
		logger:  l.With("module", "graphql_server"),
		handler: NewHandler(schema, codec, l),
	}, nil
}

// Run serves the endpoint until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	mux := http.NewServeMux()
	mux.Handle("/graphql", s.handler)

	srv := &http.Server{Addr: s.address, Handler: mux}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping GraphQL server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting GraphQL server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
