package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	notesapi "github.com/avbelov/notekeeper/internal/api/notes"
	"github.com/avbelov/notekeeper/internal/config"
	"github.com/avbelov/notekeeper/internal/repository"
	notesusecase "github.com/avbelov/notekeeper/internal/usecase/notes"
	"github.com/avbelov/notekeeper/pkg/database"
	"github.com/avbelov/notekeeper/pkg/gwserver"
	"github.com/avbelov/notekeeper/pkg/logger/slogx"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("run app: %v", err)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Parse()
	if err != nil {
		return fmt.Errorf("parse cfg: %v", err)
	}

	if err := slogx.InitGlobal(os.Stdout, cfg.App.LogLevel, cfg.App.Pretty); err != nil {
		return fmt.Errorf("init logger: %v", err)
	}

	pool, err := database.NewPGX(ctx, database.Options{
		Address:       net.JoinHostPort(cfg.Database.Host, cfg.Database.Port),
		Username:      cfg.Database.User,
		Password:      cfg.Database.Password,
		Database:      cfg.Database.Name,
		Retry:         true,
		RetryAttempts: cfg.Database.PingAttempts,
		Logger:        slogx.Default(),
	})
	if err != nil {
		return fmt.Errorf("init database: %v", err)
	}
	defer pool.Close()

	if err := repository.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("migrate database: %v", err)
	}

	usecase, err := notesusecase.New(repository.New(database.NewDatabase(pool)))
	if err != nil {
		return fmt.Errorf("init notes usecase: %v", err)
	}

	svc, err := notesapi.New(usecase)
	if err != nil {
		return fmt.Errorf("init notes api: %v", err)
	}

	r := mux.NewRouter()
	r.HandleFunc("/", greetingHandler).Methods(http.MethodGet)
	svc.Register(r)

	srv, err := gwserver.New(cfg.HTTP.Addr, r,
		gwserver.WithMiddlewares(slogx.Middleware),
		gwserver.WithLogger(slogx.Default()),
	)
	if err != nil {
		return fmt.Errorf("init http server: %v", err)
	}

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error { return srv.Run(ctx) })

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("wait app stop: %v", err)
	}

	return nil
}

func greetingHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Hello World"})
}
