// Package httpapi exposes the quiz catalog and user registry over HTTP/JSON.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/quizhub/internal/logging"
	"github.com/dmitrijs2005/quizhub/internal/server/config"
	"github.com/dmitrijs2005/quizhub/internal/server/models"
	"github.com/dmitrijs2005/quizhub/internal/server/services"
)

// QuizCatalog is the quiz side of the service layer as the handlers see it.
type QuizCatalog interface {
	ListAll(ctx context.Context) ([]*models.Quiz, error)
	GetByID(ctx context.Context, id string) (*models.Quiz, error)
	Create(ctx context.Context, in models.QuizInput) (*models.Quiz, error)
	Edit(ctx context.Context, id string, in models.QuizInput) (*models.Quiz, error)
	Delete(ctx context.Context, id string) error
}

// UserRegistry is the account side of the service layer.
type UserRegistry interface {
	Authenticate(ctx context.Context, username, password string) (*services.Session, error)
	Register(ctx context.Context, username, email, password string) (*services.Session, error)
	ListForUser(ctx context.Context, userID string) ([]*models.Quiz, error)
}

type HTTPServer struct {
	address         string
	quizzes         QuizCatalog
	users           UserRegistry
	logger          logging.Logger
	jwtSecret       []byte
	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration
}

func NewHTTPServer(cfg *config.Config, l logging.Logger, qs QuizCatalog, us UserRegistry) *HTTPServer {
	return &HTTPServer{
		address:         cfg.EndpointAddrHTTP,
		quizzes:         qs,
		users:           us,
		logger:          l.With("module", "http_server"),
		jwtSecret:       []byte(cfg.SecretKey),
		readTimeout:     cfg.ReadTimeout,
		writeTimeout:    cfg.WriteTimeout,
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most the shutdown timeout.
func (s *HTTPServer) Run(ctx context.Context) error {
	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *HTTPServer) serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
		BaseContext:  func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-done
}
