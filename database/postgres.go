package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"

	"github.com/gurman-mavi/Project-Voyage-AI-sub001/logcolors"
)

type PostgresConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN prefers a full DATABASE_URL (hosted providers) over individual settings.
func (c PostgresConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	host := orDefault(c.Host, "localhost")
	port := orDefault(c.Port, "5432")
	user := orDefault(c.User, "postgres")
	pass := orDefault(c.Password, "postgres")
	name := orDefault(c.Name, "voyage")
	sslmode := orDefault(c.SSLMode, "disable")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, pass, name, sslmode)
}

// PostgresStore keeps trips in a JSONB document column.
type PostgresStore struct {
	db *sql.DB
}

var _ Store = (*PostgresStore)(nil)

// ─── Init ─────────────────────────────────────────────────────────────────────

func OpenPostgres(ctx context.Context, cfg PostgresConfig) (*PostgresStore, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Hosted databases may take a moment to accept connections.
	for i := 0; i < 10; i++ {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		log.Infof("%s Waiting for database... attempt %d/10: %v", logcolors.LogTrips, i+1, err)
		select {
		case <-time.After(2 * time.Second):
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		}
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database after retries: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	log.Infof("%s Postgres trip store connected and migrated", logcolors.LogTrips)
	return s, nil
}

// ─── Migrations ───────────────────────────────────────────────────────────────

func (s *PostgresStore) migrate(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS trips (
			id          TEXT PRIMARY KEY,
			destination TEXT NOT NULL,
			start_date  TEXT NOT NULL,
			end_date    TEXT NOT NULL,
			document    JSONB NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_trips_created_at
			ON trips(created_at DESC)`,

		`CREATE INDEX IF NOT EXISTS idx_trips_destination
			ON trips(destination)`,
	}

	for _, m := range migrations {
		if _, err := s.db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── CRUD ─────────────────────────────────────────────────────────────────────

func (s *PostgresStore) SaveTrip(ctx context.Context, t *Trip) error {
	assignIdentity(t, time.Now())
	doc, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode trip: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO trips (id, destination, start_date, end_date, document, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			destination = EXCLUDED.destination,
			start_date  = EXCLUDED.start_date,
			end_date    = EXCLUDED.end_date,
			document    = EXCLUDED.document`,
		t.ID, t.Destination, t.StartDate, t.EndDate, doc, t.CreatedAt)
	return err
}

func (s *PostgresStore) GetTrip(ctx context.Context, id string) (*Trip, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx, `SELECT document FROM trips WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTripNotFound
	}
	if err != nil {
		return nil, err
	}

	t := &Trip{}
	if err := json.Unmarshal(doc, t); err != nil {
		return nil, fmt.Errorf("failed to decode trip %s: %w", id, err)
	}
	return t, nil
}

func (s *PostgresStore) ListTrips(ctx context.Context, limit int) ([]Trip, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT document FROM trips
		ORDER BY created_at DESC LIMIT $1`, listLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := []Trip{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var t Trip
		if err := json.Unmarshal(doc, &t); err != nil {
			log.Warnf("%s Skipping undecodable trip document: %v", logcolors.LogTrips, err)
			continue
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

func (s *PostgresStore) DeleteTrip(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTripNotFound
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

func orDefault(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
