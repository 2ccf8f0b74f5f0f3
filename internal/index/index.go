// Package index maintains an ephemeral SQLite full-text search index
// over the snippet collection.
//
// The JSON snippets file is always the source of truth; the index is a
// rebuildable cache and a stale or missing index never affects the
// collection itself.
package index

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/omnisnip/omnisnip/internal/snippet"
)

// DB wraps the SQLite index database.
type DB struct {
	db *sql.DB
}

// selectSnippetFields is the standard field list for SELECT queries.
const selectSnippetFields = `id, title, description, code, language, category,
	tags_json, created_at, updated_at, favorite`

// Open opens or creates the index database at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening index database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the index schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		-- Main snippets table, mirrors the JSON collection
		CREATE TABLE IF NOT EXISTS snippets (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			code TEXT NOT NULL,
			language TEXT NOT NULL,
			category TEXT NOT NULL,
			tags_json TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			favorite INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_snippets_language ON snippets(language);
		CREATE INDEX IF NOT EXISTS idx_snippets_category ON snippets(category);

		-- Full-text search virtual table (standalone, not external content)
		CREATE VIRTUAL TABLE IF NOT EXISTS snippets_fts USING fts5(
			id,
			title,
			description,
			code,
			tags_text
		);

		-- Rebuild metadata
		CREATE TABLE IF NOT EXISTS index_meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	_, err := db.Exec(schema)
	return err
}

// Rebuild clears the index and reloads it from the given collection.
// Returns the number of snippets indexed.
func (d *DB) Rebuild(snippets []snippet.Snippet) (int, error) {
	if _, err := d.db.Exec("DELETE FROM snippets"); err != nil {
		return 0, fmt.Errorf("clearing snippets table: %w", err)
	}
	if _, err := d.db.Exec("DELETE FROM snippets_fts"); err != nil {
		return 0, fmt.Errorf("clearing snippets_fts table: %w", err)
	}

	stmt, err := d.db.Prepare(`
		INSERT INTO snippets (` + selectSnippetFields + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing snippets insert: %w", err)
	}
	defer stmt.Close()

	ftsStmt, err := d.db.Prepare(`
		INSERT INTO snippets_fts (id, title, description, code, tags_text)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing snippets_fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for _, s := range snippets {
		var tagsJSON string
		if len(s.Tags) > 0 {
			tagsBytes, err := json.Marshal(s.Tags)
			if err != nil {
				return 0, fmt.Errorf("marshaling tags for %s: %w", s.ID, err)
			}
			tagsJSON = string(tagsBytes)
		}

		favorite := 0
		if s.Favorite {
			favorite = 1
		}

		_, err = stmt.Exec(
			s.ID, s.Title, s.Description, s.Code,
			string(s.Language), string(s.Category),
			nullableString(tagsJSON),
			s.CreatedAt.Format(time.RFC3339Nano),
			s.UpdatedAt.Format(time.RFC3339Nano),
			favorite,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting snippet %s: %w", s.ID, err)
		}

		// Space-joined tags for FTS matching
		tagsText := strings.Join(s.Tags, " ")

		_, err = ftsStmt.Exec(s.ID, s.Title, s.Description, s.Code, tagsText)
		if err != nil {
			return 0, fmt.Errorf("inserting snippets_fts for %s: %w", s.ID, err)
		}
	}

	if err := d.setMeta("rebuilt_at", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return 0, fmt.Errorf("updating rebuild time: %w", err)
	}

	return len(snippets), nil
}

// Search performs a full-text search and returns matching snippets.
func (d *DB) Search(query string, limit int) ([]snippet.Snippet, error) {
	ftsQuery := prepareFTSQuery(query)
	if ftsQuery == "" {
		return nil, nil
	}

	rows, err := d.db.Query(`
		SELECT `+selectSnippetFields+`
		FROM snippets
		WHERE id IN (SELECT id FROM snippets_fts WHERE snippets_fts MATCH ?)
		LIMIT ?`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	return scanSnippets(rows)
}

// GetByID retrieves an indexed snippet by its ID.
func (d *DB) GetByID(id string) (*snippet.Snippet, error) {
	row := d.db.QueryRow(`SELECT `+selectSnippetFields+` FROM snippets WHERE id = ?`, id)

	s, err := scanSnippet(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Count returns the number of indexed snippets.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM snippets").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting snippets: %w", err)
	}
	return count, nil
}

// RebuiltAt returns the time of the last rebuild, or the zero time if
// the index has never been rebuilt.
func (d *DB) RebuiltAt() (time.Time, error) {
	var value string
	err := d.db.QueryRow("SELECT value FROM index_meta WHERE key = 'rebuilt_at'").Scan(&value)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("reading rebuild time: %w", err)
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing rebuild time: %w", err)
	}
	return t, nil
}

// setMeta upserts a metadata key.
func (d *DB) setMeta(key, value string) error {
	_, err := d.db.Exec(`
		INSERT INTO index_meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// scanner abstracts sql.Row and sql.Rows for scanning.
type scanner interface {
	Scan(dest ...any) error
}

// scanSnippet scans a single snippet row.
func scanSnippet(row scanner) (*snippet.Snippet, error) {
	var s snippet.Snippet
	var language, category, createdAt, updatedAt string
	var tagsJSON sql.NullString
	var favorite int

	err := row.Scan(
		&s.ID, &s.Title, &s.Description, &s.Code,
		&language, &category, &tagsJSON,
		&createdAt, &updatedAt, &favorite,
	)
	if err != nil {
		return nil, err
	}

	s.Language = snippet.Language(language)
	s.Category = snippet.Category(category)
	s.Favorite = favorite != 0

	if tagsJSON.Valid && tagsJSON.String != "" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &s.Tags); err != nil {
			return nil, fmt.Errorf("parsing tags for %s: %w", s.ID, err)
		}
	}
	if s.Tags == nil {
		s.Tags = []string{}
	}

	if s.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at for %s: %w", s.ID, err)
	}
	if s.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at for %s: %w", s.ID, err)
	}

	return &s, nil
}

// scanSnippets scans all snippet rows.
func scanSnippets(rows *sql.Rows) ([]snippet.Snippet, error) {
	var snippets []snippet.Snippet
	for rows.Next() {
		s, err := scanSnippet(rows)
		if err != nil {
			return nil, err
		}
		snippets = append(snippets, *s)
	}
	return snippets, rows.Err()
}

// nullableString converts a Go string to sql.NullString.
func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// prepareFTSQuery quotes a query for FTS5 when it contains special
// characters. FTS5 uses double quotes for phrase matching.
func prepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	if strings.ContainsAny(query, "\"*+-:(){}[]^~") {
		// Escape internal quotes and wrap in quotes
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}
