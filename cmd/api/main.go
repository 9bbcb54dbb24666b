package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cli "github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/emilythestrangee/readit/backend/internal/auth"
	"github.com/emilythestrangee/readit/backend/internal/cache"
	"github.com/emilythestrangee/readit/backend/internal/config"
	"github.com/emilythestrangee/readit/backend/internal/database"
	"github.com/emilythestrangee/readit/backend/internal/events"
	"github.com/emilythestrangee/readit/backend/internal/logging"
	"github.com/emilythestrangee/readit/backend/internal/server"
	"github.com/emilythestrangee/readit/backend/internal/service"
)

func main() {
	if err := run(os.Args); err != nil {
		slog.Error("exiting", "err", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	app := cli.App{
		Name:  "readit-api",
		Usage: "community voting and moderation API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to a YAML config file",
				EnvVars: []string{"CONFIG_FILE"},
			},
		},
		Commands: []*cli.Command{
			serveCmd,
			migrateCmd,
		},
		Action: runServe,
	}
	return app.Run(args)
}

var serveCmd = &cli.Command{
	Name:   "serve",
	Usage:  "run the HTTP API and the outbox relayer",
	Action: runServe,
}

var migrateCmd = &cli.Command{
	Name:  "migrate",
	Usage: "create or update database tables and exit",
	Action: func(cctx *cli.Context) error {
		cfg, logger, err := setup(cctx)
		if err != nil {
			return err
		}
		db, err := database.New(cfg.Database, logger)
		if err != nil {
			return err
		}
		return db.Close()
	},
}

func setup(cctx *cli.Context) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		return nil, nil, err
	}
	return cfg, logging.Setup(cfg.Logger), nil
}

func runServe(cctx *cli.Context) error {
	cfg, logger, err := setup(cctx)
	if err != nil {
		return err
	}
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}

	db, err := database.New(cfg.Database, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	ttl := time.Duration(cfg.Redis.CacheTTL) * time.Second
	var store cache.Store
	if cfg.Redis.URL != "" {
		rs, err := cache.NewRedisStore(cfg.Redis.URL, ttl)
		if err != nil {
			return err
		}
		defer rs.Close()
		store = rs
		slog.Info("✅ Redis cache connected")
	} else {
		store = cache.NewMemStore(10_000, ttl)
	}

	sender := events.LogSender
	if len(cfg.Kafka.Brokers) > 0 {
		producer := events.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		sender = producer.Send
		slog.Info("✅ Kafka producer configured", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	}

	issuer := auth.NewIssuer(cfg.JWTSecret, auth.DefaultTTL)
	svc := service.New(db.GetDB(), store, service.Config{
		DefaultSpamThreshold: cfg.Moderation.DefaultSpamThreshold,
		Tokens:               issuer,
	})
	srv := server.NewServer(cfg, db, svc, issuer)
	relayer := events.NewRelayer(db.GetDB(), sender)

	ctx, stop := signal.NotifyContext(cctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("🚀 Server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return relayer.Run(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("📝 Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
