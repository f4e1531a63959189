package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/99minutos/usertask-service/internal/core/ports"
	"github.com/99minutos/usertask-service/internal/infrastructure/db/mongo"
	"github.com/99minutos/usertask-service/internal/infrastructure/db/postgres"
	"github.com/99minutos/usertask-service/internal/pkg/config"
)

// store bundles the repositories of the selected driver with its probe and
// teardown.
type store struct {
	name  string
	users ports.UserRepository
	tasks ports.TaskRepository
	ping  func(ctx context.Context) error
	close func()
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, log)
	case config.DriverMongo:
		return openMongo(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}

func openMongo(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store, error) {
	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	return &store{
		name:  "mongodb",
		users: mongo.NewUserRepository(db),
		tasks: mongo.NewTaskRepository(db),
		ping:  func(ctx context.Context) error { return mongo.Ping(ctx, db) },
		close: func() { disconnectMongo(client, log) },
	}, nil
}

func disconnectMongo(client *mongodriver.Client, log zerolog.Logger) {
	if err := client.Disconnect(context.Background()); err != nil {
		log.Warn().Err(err).Msg("mongodb disconnect")
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store, error) {
	db, err := postgres.Open(ctx, postgres.Config{
		URL:          cfg.Postgres.URL,
		MaxOpenConns: cfg.Postgres.MaxOpenConns,
	})
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(db, log); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Info().Msg("connected to postgres")

	return &store{
		name:  "postgres",
		users: postgres.NewUserRepository(db),
		tasks: postgres.NewTaskRepository(db),
		ping:  db.PingContext,
		close: func() { closeSQL(db, log) },
	}, nil
}

func closeSQL(db *sql.DB, log zerolog.Logger) {
	if err := db.Close(); err != nil {
		log.Warn().Err(err).Msg("postgres close")
	}
}
