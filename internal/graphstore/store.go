// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graphstore persists mention graphs. The ordered JSON file is
// the canonical artifact; flattened YAML/JSON exports and the SQLite
// mention index are derived from it and can be rebuilt at any time.
package graphstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/mention-engine/pkg/types"
)

// Store manages the SQLite mention index.
type Store struct {
	db *sql.DB
}

// Open opens or creates the index database at path, creating the parent
// directory and the schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS mentions (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			drug TEXT NOT NULL,
			journal TEXT NOT NULL,
			date TEXT,
			publication_title TEXT,
			source_type TEXT,
			source_id TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_mentions_drug ON mentions(drug)`,
		`CREATE INDEX IF NOT EXISTS idx_mentions_journal ON mentions(journal)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// ImportSummary holds counts from one index rebuild.
type ImportSummary struct {
	Mentions int
	Drugs    int
	Journals int
}

// ImportGraph replaces the index contents with the mentions of g in
// stored graph order, in a single transaction.
func (s *Store) ImportGraph(ctx context.Context, g *types.MentionGraph) (ImportSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM mentions`); err != nil {
		return ImportSummary{}, fmt.Errorf("clearing previous index: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO mentions (drug, journal, date, publication_title, source_type, source_id)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	var summary ImportSummary
	journals := make(map[string]struct{})
	for _, drug := range g.Drugs() {
		summary.Drugs++
		for _, journal := range g.Journals(drug) {
			journals[journal] = struct{}{}
			for _, m := range g.Mentions(drug, journal) {
				_, err := stmt.ExecContext(ctx,
					drug, journal, m.Date, m.PublicationTitle, string(m.SourceType), m.SourceID,
				)
				if err != nil {
					return ImportSummary{}, fmt.Errorf("inserting mention for %s: %w", drug, err)
				}
				summary.Mentions++
			}
		}
	}
	summary.Journals = len(journals)

	if err := tx.Commit(); err != nil {
		return ImportSummary{}, fmt.Errorf("committing import: %w", err)
	}
	return summary, nil
}

// Filter narrows a Mentions lookup. Zero values mean no constraint.
type Filter struct {
	Drug       string
	Journal    string
	SourceType string

	// DatePrefix matches dates starting with the given string, so "2020"
	// or "2020-01" select a year or a month.
	DatePrefix string

	// Limit caps the row count. Zero means no cap.
	Limit int
}

// Row is one indexed mention.
type Row struct {
	Drug             string `json:"drug"`
	Journal          string `json:"journal"`
	Date             string `json:"date"`
	PublicationTitle string `json:"publication_title"`
	SourceType       string `json:"source_type"`
	SourceID         string `json:"source_id"`
}

// Mentions returns the indexed rows matching f, in import order.
func (s *Store) Mentions(ctx context.Context, f Filter) ([]Row, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT drug, journal, date, publication_title, source_type, source_id
		FROM mentions
		WHERE 1=1`)

	if f.Drug != "" {
		qb.WriteString(` AND drug = ?`)
		args = append(args, f.Drug)
	}
	if f.Journal != "" {
		qb.WriteString(` AND journal = ?`)
		args = append(args, f.Journal)
	}
	if f.SourceType != "" {
		qb.WriteString(` AND source_type = ?`)
		args = append(args, f.SourceType)
	}
	if f.DatePrefix != "" {
		qb.WriteString(` AND date LIKE ?`)
		args = append(args, f.DatePrefix+"%")
	}

	qb.WriteString(` ORDER BY rowid`)
	if f.Limit > 0 {
		qb.WriteString(` LIMIT ?`)
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying mentions: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(
			&r.Drug, &r.Journal, &r.Date, &r.PublicationTitle, &r.SourceType, &r.SourceID,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
