package server

import (
	"context"
	"net/http"
	"os/signal"
	"sync"
	"syscall"

	"github.com/daybook-app/daybook-client/internal/logger"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger

	stopOnce sync.Once
	stopped  chan struct{}
}

func NewServer(handler http.Handler, address string, logger *logger.Logger) (Server, error) {
	logger.Info().Str("address", address).Msg("creating new server...")

	if address == "" {
		return nil, errEmptyAddress
	}

	return &server{
		httpServer: newHTTPServer(handler, address, logger),
		logger:     logger,
		stopped:    make(chan struct{}),
	}, nil
}

// RunServer blocks until Shutdown is called or a stop signal arrives.
func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	// listen for stop signals
	go func() {
		select {
		case <-ctx.Done():
			s.Shutdown()
		case <-s.stopped:
		}
	}()

	s.logger.Info().Msg("launching HTTP server")
	go s.httpServer.RunServer()

	<-s.stopped
	s.logger.Info().Msg("server shut down gracefully")
}

func (s *server) Shutdown() {
	s.stopOnce.Do(func() {
		s.httpServer.Shutdown()
		close(s.stopped)
	})
}
