package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"go-tripplanner/pkg/models"
	"time"

	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("plan not found")

var schema = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA synchronous=NORMAL",
	`CREATE TABLE IF NOT EXISTS plans (
	id           TEXT PRIMARY KEY,
	destination  TEXT NOT NULL,
	mode         TEXT NOT NULL,
	duration     INTEGER NOT NULL,
	budget       TEXT NOT NULL,
	generated_at INTEGER NOT NULL,
	document     TEXT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS plans_generated_at ON plans (generated_at DESC)`,
}

// Store keeps exported plans in SQLite, with generation times as unix
// nanoseconds. Stored plans are read back for
// display only.
type Store struct {
	db *sql.DB
}

type Entry struct {
	ID          string    `json:"id"`
	Destination string    `json:"destination"`
	Mode        string    `json:"mode"`
	Duration    int       `json:"duration"`
	GeneratedAt time.Time `json:"generated_at"`
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("init database: %w", err)
		}
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores export and returns its id, assigning one when it has none.
func (s *Store) Save(ctx context.Context, export models.PlanExport) (string, error) {
	if export.ID == "" {
		export.ID = uuid.NewString()
	}
	doc, err := json.Marshal(export)
	if err != nil {
		return "", fmt.Errorf("marshal plan: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO plans (id, destination, mode, duration, budget, generated_at, document)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		export.ID, export.Destination, export.Mode, export.Duration, export.Budget,
		export.GeneratedAt.UnixNano(), string(doc))
	if err != nil {
		return "", fmt.Errorf("insert plan: %w", err)
	}
	return export.ID, nil
}

func (s *Store) Get(ctx context.Context, id string) (models.PlanExport, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT document FROM plans WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PlanExport{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return models.PlanExport{}, fmt.Errorf("query plan: %w", err)
	}

	var export models.PlanExport
	if err := json.Unmarshal([]byte(doc), &export); err != nil {
		return models.PlanExport{}, fmt.Errorf("unmarshal plan: %w", err)
	}
	return export, nil
}

// List returns the most recent plans first.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, destination, mode, duration, generated_at FROM plans ORDER BY generated_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query plans: %w", err)
	}
	defer rows.Close()

	res := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		var generated int64
		if err := rows.Scan(&e.ID, &e.Destination, &e.Mode, &e.Duration, &generated); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		e.GeneratedAt = time.Unix(0, generated).UTC()
		res = append(res, e)
	}
	return res, rows.Err()
}
