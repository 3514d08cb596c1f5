// Package history persists a log of past generations in sqlite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS generations (
    id TEXT PRIMARY KEY,
    request TEXT NOT NULL,
    pattern TEXT NOT NULL,
    prompt TEXT NOT NULL,
    model TEXT NOT NULL,
    image_path TEXT NOT NULL,
    commentary TEXT,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_generations_created_at ON generations(created_at);
CREATE INDEX IF NOT EXISTS idx_generations_pattern ON generations(pattern);
`

type Store struct {
	db *sql.DB
}

func NewStore() (*Store, error) {
	dbPath, err := defaultDBPath()
	if err != nil {
		return nil, err
	}
	return NewStoreWithPath(dbPath)
}

func NewStoreWithPath(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

func defaultDBPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".nanobanana", "history.db"), nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Record(ctx context.Context, gen *Generation) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO generations (id, request, pattern, prompt, model, image_path, commentary, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		gen.ID, gen.Request, gen.Pattern, gen.Prompt, gen.Model,
		gen.ImagePath, nullString(gen.Commentary), gen.CreatedAt)
	return err
}

func (s *Store) Get(ctx context.Context, id string) (*Generation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, request, pattern, prompt, model, image_path, commentary, created_at
		 FROM generations WHERE id = ?`, id)
	return scanGeneration(row)
}

// List returns the most recent generations, newest first. A limit of
// zero or less means no limit.
func (s *Store) List(ctx context.Context, limit int) ([]*Generation, error) {
	query := `SELECT id, request, pattern, prompt, model, image_path, commentary, created_at
		 FROM generations ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gens []*Generation
	for rows.Next() {
		gen, err := scanGeneration(rows)
		if err != nil {
			return nil, err
		}
		gens = append(gens, gen)
	}
	return gens, rows.Err()
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM generations`).Scan(&count)
	return count, err
}

func (s *Store) CountByPattern(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT pattern, COUNT(*) FROM generations GROUP BY pattern`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var pattern string
		var n int
		if err := rows.Scan(&pattern, &n); err != nil {
			return nil, err
		}
		counts[pattern] = n
	}
	return counts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGeneration(row scanner) (*Generation, error) {
	gen := &Generation{}
	var commentary sql.NullString
	err := row.Scan(&gen.ID, &gen.Request, &gen.Pattern, &gen.Prompt,
		&gen.Model, &gen.ImagePath, &commentary, &gen.CreatedAt)
	if err != nil {
		return nil, err
	}
	gen.Commentary = commentary.String
	return gen, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
