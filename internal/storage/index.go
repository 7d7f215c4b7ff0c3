package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/llGaetanll/McUtils/pkg/search"
	"github.com/llGaetanll/McUtils/pkg/world"
)

// Run is one completed search as recorded in the index.
type Run struct {
	ID         string
	Start, End world.ChunkPos
	Window     search.Window
	TileSize   int32
	Result     search.Result
	Elapsed    time.Duration
	RecordedAt time.Time
}

// Fixed-width so that recorded_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Index keeps a queryable history of search runs in SQLite.
type Index struct {
	db *sql.DB
}

// OpenIndex opens or creates the run index at path.
func OpenIndex(path string) (*Index, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Index{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			x1 INTEGER NOT NULL,
			z1 INTEGER NOT NULL,
			x2 INTEGER NOT NULL,
			z2 INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			tile_size INTEGER NOT NULL,
			p1_x INTEGER NOT NULL,
			p1_z INTEGER NOT NULL,
			p2_x INTEGER NOT NULL,
			p2_z INTEGER NOT NULL,
			count INTEGER NOT NULL,
			probability REAL NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			recorded_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS runs_seed_count ON runs(seed, count DESC);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// Close releases the database.
func (ix *Index) Close() error {
	return ix.db.Close()
}

// Record stores r. An empty ID is replaced by a fresh UUID and a zero
// RecordedAt by the current time; the stored ID is returned.
func (ix *Index) Record(ctx context.Context, r Run) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.RecordedAt.IsZero() {
		r.RecordedAt = time.Now()
	}
	_, err := ix.db.ExecContext(ctx, `INSERT INTO runs
		(id, seed, x1, z1, x2, z2, width, height, tile_size, p1_x, p1_z, p2_x, p2_z, count, probability, elapsed_ms, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Result.Seed,
		r.Start.X, r.Start.Z, r.End.X, r.End.Z,
		r.Window.Width, r.Window.Height, r.TileSize,
		r.Result.P1.X, r.Result.P1.Z, r.Result.P2.X, r.Result.P2.Z,
		int64(r.Result.Count), r.Result.Probability(),
		r.Elapsed.Milliseconds(), r.RecordedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("record run: %w", err)
	}
	return r.ID, nil
}

// Best returns up to limit runs for seed, densest first. Runs with equal
// counts are ordered oldest first.
func (ix *Index) Best(ctx context.Context, seed int64, limit int) ([]Run, error) {
	rows, err := ix.db.QueryContext(ctx, `SELECT
		id, seed, x1, z1, x2, z2, width, height, tile_size, p1_x, p1_z, p2_x, p2_z, count, elapsed_ms, recorded_at
		FROM runs WHERE seed = ? ORDER BY count DESC, recorded_at ASC LIMIT ?`, seed, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r         Run
			count     int64
			elapsedMS int64
			at        string
		)
		if err := rows.Scan(&r.ID, &r.Result.Seed,
			&r.Start.X, &r.Start.Z, &r.End.X, &r.End.Z,
			&r.Window.Width, &r.Window.Height, &r.TileSize,
			&r.Result.P1.X, &r.Result.P1.Z, &r.Result.P2.X, &r.Result.P2.Z,
			&count, &elapsedMS, &at); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Result.Count = uint32(count)
		r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		if r.RecordedAt, err = time.Parse(timeLayout, at); err != nil {
			return nil, fmt.Errorf("parse recorded_at %q: %w", at, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	return out, nil
}
