// internal/app/app.go

package app

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/poofware/screening-service/internal/config"
	"github.com/poofware/screening-service/internal/utils"
)

const dbConnectTimeout = 10 * time.Second

// App owns the process-level resources: currently just the pg pool.
type App struct {
	DB *pgxpool.Pool
}

func NewApp(cfg *config.Config) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dbConnectTimeout)
	defer cancel()

	pool, err := newDBPool(ctx, cfg.DBUrl)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	utils.Logger.Info("Connected to database")
	return &App{DB: pool}, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

func newDBPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	return pgxpool.ConnectConfig(ctx, cfg)
}
