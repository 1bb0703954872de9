package db

import (
    "context"
    "errors"
    "time"

    "github.com/jackc/pgx/v5/pgxpool"
)

// NewPool builds the shared Postgres pool. Rate lookups are short reads
// plus one audit insert, so the pool stays small and statement timeouts
// tight.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
    if databaseURL == "" {
        return nil, errors.New("DATABASE_URL is not set")
    }
    cfg, err := pgxpool.ParseConfig(databaseURL)
    if err != nil {
        return nil, err
    }
    cfg.MaxConns = 8
    cfg.MinConns = 0
    cfg.MaxConnLifetime = 30 * time.Minute
    cfg.MaxConnIdleTime = 5 * time.Minute
    cfg.HealthCheckPeriod = 30 * time.Second
    cfg.ConnConfig.RuntimeParams["application_name"] = "shiprates-api"
    cfg.ConnConfig.RuntimeParams["search_path"] = "public"
    cfg.ConnConfig.RuntimeParams["client_encoding"] = "UTF8"
    cfg.ConnConfig.RuntimeParams["timezone"] = "UTC"
    // Server-side timeouts; servers may be configured to ignore these.
    cfg.ConnConfig.RuntimeParams["statement_timeout"] = "5000"
    cfg.ConnConfig.RuntimeParams["idle_in_transaction_session_timeout"] = "5000"

    return pgxpool.NewWithConfig(ctx, cfg)
}
