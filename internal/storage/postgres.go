package storage

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/yourname/savecircle/internal"
)

//go:embed migrations/*.sql
var migrations embed.FS

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(ctx context.Context, dsn string, logger internal.Logger) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.Errorf("failed to ping postgres: %v", err)
		return nil, err
	}
	if err := migrate(ctx, pool); err != nil {
		pool.Close()
		logger.Errorf("failed to migrate postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, "migrations")
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// --- KV ---
func (p *PostgresStorage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := p.pool.QueryRow(ctx, `SELECT value FROM kv_entries WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		p.logger.Errorf("failed to get %s: %v", key, err)
		return nil, false, err
	}
	return value, true, nil
}

func (p *PostgresStorage) Set(ctx context.Context, key string, value []byte) error {
	return p.Batch(ctx, []Op{Put(key, value)})
}

func (p *PostgresStorage) Delete(ctx context.Context, key string) error {
	return p.Batch(ctx, []Op{Del(key)})
}

func (p *PostgresStorage) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := p.pool.Query(ctx, `SELECT key FROM kv_entries WHERE starts_with(key, $1) ORDER BY key`, prefix)
	if err != nil {
		p.logger.Errorf("failed to list keys: %v", err)
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Batch runs every op in one transaction.
func (p *PostgresStorage) Batch(ctx context.Context, ops []Op) (err error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		err = tx.Commit(ctx)
	}()

	for _, op := range ops {
		if op.Value == nil {
			if _, err = tx.Exec(ctx, `DELETE FROM kv_entries WHERE key = $1`, op.Key); err != nil {
				p.logger.Errorf("failed to delete %s: %v", op.Key, err)
				return err
			}
			continue
		}
		_, err = tx.Exec(ctx, `INSERT INTO kv_entries (key, value, updated_at) VALUES ($1, $2, now())
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`, op.Key, string(op.Value))
		if err != nil {
			p.logger.Errorf("failed to upsert %s: %v", op.Key, err)
			return fmt.Errorf("storage: upsert %s: %w", op.Key, err)
		}
	}
	return nil
}

// --- Compile-time assertions ---
var _ KV = (*PostgresStorage)(nil)
