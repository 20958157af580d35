// Package catalog provides an optional Postgres-backed "world atlas": a
// record of generated worlds (seed, params hash, province/region counts)
// for the `mapgen catalog` subcommand, adapted from the teacher's
// internal/db/postgres.go connection-wrapper shape.
package catalog

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Catalog wraps a Postgres connection pool.
type Catalog struct {
	pool *pgxpool.Pool
}

// New connects to connString. An empty connString yields a no-op Catalog.
func New(ctx context.Context, connString string) (*Catalog, error) {
	if connString == "" {
		return &Catalog{}, nil
	}

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	log.Println("Connected to PostgreSQL")
	return &Catalog{pool: pool}, nil
}

// Close closes the connection pool.
func (c *Catalog) Close() {
	if c != nil && c.pool != nil {
		c.pool.Close()
	}
}

// IsConnected reports whether the catalog is backed by a live pool.
func (c *Catalog) IsConnected() bool {
	return c != nil && c.pool != nil
}

// Entry is one row of the world atlas.
type Entry struct {
	ID             uuid.UUID
	Seed           uint64
	WorldType      string
	Width, Height  uint32
	ParamsHash     string
	ProvinceCount  int
	RegionCount    int
}

// EnsureSchema creates the worlds table if it doesn't already exist.
func (c *Catalog) EnsureSchema(ctx context.Context) error {
	if !c.IsConnected() {
		return nil
	}
	_, err := c.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS worlds (
			id uuid PRIMARY KEY,
			seed bigint NOT NULL,
			world_type text NOT NULL,
			width int NOT NULL,
			height int NOT NULL,
			params_hash text NOT NULL,
			province_count int NOT NULL,
			region_count int NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Record inserts one Entry, generating its id.
func (c *Catalog) Record(ctx context.Context, e Entry) (uuid.UUID, error) {
	if !c.IsConnected() {
		return uuid.Nil, nil
	}
	id := uuid.New()
	_, err := c.pool.Exec(ctx, `
		INSERT INTO worlds (id, seed, world_type, width, height, params_hash, province_count, region_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, int64(e.Seed), e.WorldType, e.Width, e.Height, e.ParamsHash, e.ProvinceCount, e.RegionCount)
	if err != nil {
		return uuid.Nil, fmt.Errorf("record world: %w", err)
	}
	return id, nil
}

// List returns the most recently recorded worlds, newest first.
func (c *Catalog) List(ctx context.Context, limit int) ([]Entry, error) {
	if !c.IsConnected() {
		return nil, nil
	}
	rows, err := c.pool.Query(ctx, `
		SELECT id, seed, world_type, width, height, params_hash, province_count, region_count
		FROM worlds ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list worlds: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Seed, &e.WorldType, &e.Width, &e.Height, &e.ParamsHash, &e.ProvinceCount, &e.RegionCount); err != nil {
			return nil, fmt.Errorf("scan world row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
