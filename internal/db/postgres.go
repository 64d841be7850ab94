package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"call-insights/migrations"
)

// PostgresDB wraps a pgxpool connection pool.
type PostgresDB struct {
	Pool *pgxpool.Pool
}

// NewPostgres creates a connection pool and verifies it with a ping.
func NewPostgres(ctx context.Context, connString string) (*PostgresDB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresDB{Pool: pool}, nil
}

// Ping checks if the database is reachable
func (d *PostgresDB) Ping(ctx context.Context) error {
	return d.Pool.Ping(ctx)
}

// RunMigrations applies all embedded SQL migrations.
func RunMigrations(connString string) error {
	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, connString)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// Close closes the connection pool.
func (d *PostgresDB) Close() {
	d.Pool.Close()
}

// SeedDevEvaluations inserts a handful of evaluations for local development.
// The failure payloads cover each shape the analytics pipeline accepts.
func (d *PostgresDB) SeedDevEvaluations(ctx context.Context, clientID string) (int, error) {
	now := time.Now().UTC()
	seeds := []struct {
		agent   string
		daysAgo int
		reasons any
		notes   string
		score   float64
	}{
		{"Ava", 1, []string{"Agent hallucinated a trade-in discount", "Did not follow the transfer instruction"}, "", 42},
		{"Ava", 2, map[string]any{"reason": "Transcription garbled the stock number", "severity": "major"}, "", 55},
		{"Max", 3, "1. Quoted financing terms 2. Policy violation on pricing", "", 38},
		{"Max", 9, nil, "Rule: confirm caller name Rule: offer callback", 61},
		{"Ava", 10, []string{"Transcription garbled the stock number"}, "", 58},
		{"Max", 12, "• Agent hallucinated a trade-in discount • Critical failure: booked wrong date", "", 20},
	}

	query := `
		INSERT INTO call_evaluations
			(id, call_id, client_id, agent_name, evaluated_at, failure_reasons, evaluation_notes, quality_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for i, s := range seeds {
		var reasons []byte
		if s.reasons != nil {
			encoded, err := json.Marshal(s.reasons)
			if err != nil {
				return i, fmt.Errorf("failed to encode seed %d: %w", i, err)
			}
			reasons = encoded
		}

		_, err := d.Pool.Exec(ctx, query,
			uuid.New(),
			fmt.Sprintf("dev-call-%03d", i+1),
			clientID,
			s.agent,
			now.AddDate(0, 0, -s.daysAgo),
			reasons,
			s.notes,
			s.score,
		)
		if err != nil {
			return i, fmt.Errorf("failed to seed evaluation %d: %w", i, err)
		}
	}

	return len(seeds), nil
}
