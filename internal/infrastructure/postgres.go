package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresClient struct {
	Pool *pgxpool.Pool
}

func NewPostgresClient(connString string) (*PostgresClient, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	// Pool configuration
	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	client := &PostgresClient{Pool: pool}

	if err := client.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return client, nil
}

func (p *PostgresClient) Migrate() error {
	ctx := context.Background()

	// Businesses Table — written by the admin tooling, read-only here
	_, err := p.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS businesses (
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			industry VARCHAR(32) NOT NULL DEFAULT 'other',
			settings JSONB NOT NULL DEFAULT '{}',
			status VARCHAR(16) NOT NULL DEFAULT 'active',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("create businesses table: %w", err)
	}

	// Products Table (per-business catalog)
	_, err = p.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			business_id VARCHAR(64) NOT NULL REFERENCES businesses(id),
			name VARCHAR(255) NOT NULL,
			description TEXT DEFAULT '',
			price VARCHAR(50) DEFAULT '',
			currency VARCHAR(10) DEFAULT '',
			color VARCHAR(50) DEFAULT '',
			size VARCHAR(20) DEFAULT '',
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("create products table: %w", err)
	}

	p.Pool.Exec(ctx, "CREATE INDEX IF NOT EXISTS idx_products_business ON products(business_id);")

	// Interactions Table (append-only routing log)
	_, err = p.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS interactions (
			id SERIAL PRIMARY KEY,
			business_id VARCHAR(64) NOT NULL,
			customer_id VARCHAR(64) NOT NULL,
			channel VARCHAR(20) NOT NULL,
			intent VARCHAR(64) NOT NULL,
			reply_len INT NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("create interactions table: %w", err)
	}

	return nil
}

func (p *PostgresClient) Close() {
	p.Pool.Close()
}
