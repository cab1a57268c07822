package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/f4ah6o/simple-web-server-go/internal/cases"
	"github.com/f4ah6o/simple-web-server-go/internal/config"
	"github.com/f4ah6o/simple-web-server-go/internal/listing"
	"github.com/f4ah6o/simple-web-server-go/internal/page"
	"github.com/f4ah6o/simple-web-server-go/internal/script"
)

// shutdownTimeout bounds how long in-flight requests may take once the
// server is asked to stop.
const shutdownTimeout = 10 * time.Second

// NewHandlerFromConfig builds the default case chain described by cfg and
// returns a Handler serving cfg.Root with it.
func NewHandlerFromConfig(cfg config.Config, log logrus.FieldLogger) (*Handler, error) {
	chain, err := cases.NewDefaultChain(cases.Options{
		IndexFile:     cfg.IndexFile,
		ScriptSuffix:  cfg.ScriptSuffix,
		Scripts:       script.NewRunner(cfg.Interpreter, cfg.ScriptTimeout, log),
		Lister:        listing.New(cfg.HiddenPrefix),
		RenderListing: page.Listing,
	})
	if err != nil {
		return nil, fmt.Errorf("build case chain: %w", err)
	}
	return NewHandler(cfg.Root, chain, log), nil
}

// Server serves HTTP until its context is cancelled.
type Server struct {
	addr string
	http *http.Server
	log  logrus.FieldLogger
}

// New returns a Server that will listen on addr.
func New(addr string, handler http.Handler, log logrus.FieldLogger) *Server {
	return &Server{
		addr: addr,
		http: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errC := make(chan error, 1)
	go func() {
		errC <- s.http.Serve(ln)
	}()
	s.log.WithField("addr", ln.Addr().String()).Info("listening")

	select {
	case err := <-errC:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
