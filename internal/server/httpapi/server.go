package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/escc-report-api/internal/logging"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	address string
	handler http.Handler
	logger  logging.Logger
}

func NewServer(address string, handler http.Handler, l logging.Logger) *Server {
	return &Server{
		address: address,
		handler: handler,
		logger:  l.With("module", "http_server"),
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}
