// Package sqlitestore persists pattern libraries in SQLite.
package sqlitestore

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gogpu/mortier"
	"github.com/gogpu/mortier/patternstore"
)

//go:embed schema.sql
var schema string

// Open opens (creating if needed) the SQLite database at path.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("sqlitestore: mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?mode=rwc&_pragma=busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: open: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlitestore: open: %w", err)
	}
	return db, nil
}

// Migrate creates the pattern tables if they do not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("sqlitestore: apply migration: %w", err)
	}
	return nil
}

// Save writes every pattern of s in one transaction. Existing patterns with
// the same id are replaced.
func Save(ctx context.Context, db *sql.DB, s patternstore.Store) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlitestore: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, id := range s.IDs() {
		p, err := s.Lookup(id)
		if err != nil {
			return err
		}
		if err := savePattern(ctx, tx, p); err != nil {
			return fmt.Errorf("sqlitestore: save %q: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlitestore: commit: %w", err)
	}
	return nil
}

func savePattern(ctx context.Context, tx *sql.Tx, p mortier.Pattern) error {
	_, err := tx.ExecContext(ctx, `
        INSERT INTO patterns (id, name, t1x, t1y, t2x, t2y)
        VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            name = excluded.name,
            t1x = excluded.t1x, t1y = excluded.t1y,
            t2x = excluded.t2x, t2y = excluded.t2y
    `, p.ID, p.Name, p.T1.X, p.T1.Y, p.T2.X, p.T2.Y)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM pattern_tiles WHERE pattern_id = ?`, p.ID); err != nil {
		return err
	}
	for seq, tile := range p.Tiles {
		flat := make([]float64, 0, 2*len(tile))
		for _, pt := range tile {
			flat = append(flat, pt.X, pt.Y)
		}
		points, err := json.Marshal(flat)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO pattern_tiles (pattern_id, seq, points) VALUES (?, ?, ?)
        `, p.ID, seq, string(points)); err != nil {
			return err
		}
	}
	return nil
}

// Load reads every stored pattern into an in-memory store.
func Load(ctx context.Context, db *sql.DB) (*patternstore.MapStore, error) {
	rows, err := db.QueryContext(ctx, `
        SELECT id, name, t1x, t1y, t2x, t2y FROM patterns ORDER BY id
    `)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: query patterns: %w", err)
	}
	var patterns []mortier.Pattern
	index := map[string]int{}
	for rows.Next() {
		var p mortier.Pattern
		if err := rows.Scan(&p.ID, &p.Name, &p.T1.X, &p.T1.Y, &p.T2.X, &p.T2.Y); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("sqlitestore: scan pattern: %w", err)
		}
		index[p.ID] = len(patterns)
		patterns = append(patterns, p)
	}
	if err := errors.Join(rows.Err(), rows.Close()); err != nil {
		return nil, fmt.Errorf("sqlitestore: query patterns: %w", err)
	}

	rows, err = db.QueryContext(ctx, `
        SELECT pattern_id, points FROM pattern_tiles ORDER BY pattern_id, seq
    `)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: query tiles: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id, points string
		if err := rows.Scan(&id, &points); err != nil {
			return nil, fmt.Errorf("sqlitestore: scan tile: %w", err)
		}
		i, ok := index[id]
		if !ok {
			continue
		}
		var flat []float64
		if err := json.Unmarshal([]byte(points), &flat); err != nil {
			return nil, fmt.Errorf("sqlitestore: pattern %q: %w", id, err)
		}
		if len(flat)%2 != 0 {
			return nil, mortier.Errorf(mortier.KindInvalidGeometry, "sqlitestore", "pattern %q: odd coordinate count %d", id, len(flat))
		}
		tile := make([]mortier.Point, len(flat)/2)
		for k := range tile {
			tile[k] = mortier.Pt(flat[2*k], flat[2*k+1])
		}
		patterns[i].Tiles = append(patterns[i].Tiles, tile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlitestore: query tiles: %w", err)
	}
	return patternstore.NewMapStore(patterns...)
}
