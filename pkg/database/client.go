package database

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
)

type logger interface {
	Warn(context.Context, string, ...slog.Attr)
}

type Options struct {
	Address  string `validate:"required,hostname_port"`
	Username string `validate:"required"`
	Password string `validate:"required"`
	Database string `validate:"required"`

	Retry         bool
	RetryAttempts uint `validate:"max=10"`

	Logger logger
}

var optsValidator = validator.New()

func (o Options) Validate() error {
	return optsValidator.Struct(o)
}

func NewPGX(ctx context.Context, opts Options) (*pgxpool.Pool, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validate options for pgx: %v", err)
	}

	if opts.Logger == nil {
		opts.Logger = noopLogger{}
	}
	if opts.RetryAttempts == 0 {
		opts.RetryAttempts = 1
	}

	ds := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(opts.Username, opts.Password),
		Host:   opts.Address,
		Path:   opts.Database,
	}

	pool, err := pgxpool.New(ctx, ds.String())
	if err != nil {
		return nil, fmt.Errorf("open new pgx pool: %v", err)
	}

	if !opts.Retry {
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping to database: %v", err)
		}
		return pool, nil
	}

	if err := retry.Do(
		func() error { return pool.Ping(ctx) },
		retry.Delay(time.Millisecond*300),
		retry.Attempts(opts.RetryAttempts),
		retry.OnRetry(func(attempt uint, err error) {
			opts.Logger.Warn(
				ctx,
				"failed ping to database",
				slog.Any("err", err),
				slog.Uint64("attempt", uint64(attempt)),
			)
		}),
	); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping to database: %v", err)
	}

	return pool, nil
}

type noopLogger struct{}

func (n noopLogger) Warn(context.Context, string, ...slog.Attr) {}
