package pubtools

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database that records the posts of the last index build.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(1)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS archive (
    file TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    summary TEXT NOT NULL
);
`)
	return err
}

// SyncPosts makes the archive match posts: every post is upserted by source
// file name and files no longer present are removed, in one transaction.
func (s *Store) SyncPosts(posts []Post) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`CREATE TEMP TABLE IF NOT EXISTS current_files (file TEXT PRIMARY KEY)`); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM current_files`); err != nil {
		return err
	}
	for _, p := range posts {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO archive (file, title, date, summary) VALUES (?, ?, ?, ?)`,
			p.File, p.Title, p.Publication.Format(DateLayout), p.FirstParagraph); err != nil {
			return fmt.Errorf("archive %s: %w", p.File, err)
		}
		if _, err := tx.Exec(`INSERT OR IGNORE INTO current_files (file) VALUES (?)`, p.File); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`DELETE FROM archive WHERE file NOT IN (SELECT file FROM current_files)`); err != nil {
		return err
	}
	return tx.Commit()
}

// ListPosts returns every archived post ordered by date descending.
func (s *Store) ListPosts() ([]Post, error) {
	rows, err := s.db.Query(`SELECT file, title, date, summary FROM archive ORDER BY date DESC, file`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func scanPost(r *sql.Rows) (Post, error) {
	var file, title, date, summary string
	if err := r.Scan(&file, &title, &date, &summary); err != nil {
		return Post{}, err
	}
	published, err := ParseDate(date)
	if err != nil {
		return Post{}, err
	}
	return Post{
		PostMetadata: PostMetadata{
			Publication:    published,
			Title:          title,
			FirstParagraph: summary,
		},
		File: file,
	}, nil
}
