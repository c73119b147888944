package gwserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 3 * time.Second
)

type Logger interface {
	Info(context.Context, string, ...slog.Attr)
}

type Option func(*Server)

func WithMiddlewares(mds ...func(http.Handler) http.Handler) Option {
	return func(s *Server) { s.middlewares = append(s.middlewares, mds...) }
}

func WithLogger(l Logger) Option {
	return func(s *Server) { s.logger = l }
}

type Server struct {
	addr        string
	middlewares []func(http.Handler) http.Handler
	logger      Logger
	srv         *http.Server
}

var addrValidator = validator.New()

func New(addr string, handler http.Handler, opts ...Option) (*Server, error) {
	if err := addrValidator.Var(addr, "required,hostname_port"); err != nil {
		return nil, fmt.Errorf("validate gw server addr: %v", err)
	}
	if handler == nil {
		return nil, errors.New("nil gw server handler")
	}

	s := &Server{addr: addr}
	for _, opt := range opts {
		opt(s)
	}

	for _, md := range s.middlewares {
		handler = md(handler)
	}

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return s, nil
}

func (s *Server) Run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return s.srv.Shutdown(shutdownCtx)
	})

	eg.Go(func() error {
		if s.logger != nil {
			s.logger.Info(ctx, "listen and serve", slog.String("addr", s.addr))
		}

		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen and serve: %v", err)
		}

		return nil
	})

	return eg.Wait()
}
