package main

import (
	"context"
	"fmt"

	"idea-lab/config"
	"idea-lab/db"
	"idea-lab/repositories"
)

func openStore(ctx context.Context, cfg config.AppConfig) (repositories.Store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMongo:
		if err := db.InitMongo(ctx, cfg.Mongo); err != nil {
			return nil, err
		}
		return repositories.NewMongoStore(db.Client(), db.Database()), nil
	case config.StoreDriverPostgres:
		pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		return repositories.NewPostgresStore(pool), nil
	case config.StoreDriverSQLite:
		conn, err := db.OpenSQLite(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		config.Logger.Infof("SQLite store opened at %s", cfg.SQLite.Path)
		return repositories.NewSQLiteStore(conn), nil
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}
