package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"shelflife/internal/modules/book/domain"
	bookout "shelflife/internal/modules/book/port/out"

	_ "modernc.org/sqlite"
)

// SQLiteBookProjector maintains a flat read model of the book index.
// The markdown notes stay the source of truth; this table only makes
// listing and genre filtering cheap.
type SQLiteBookProjector struct {
	db *sql.DB
}

func NewSQLiteBookProjector(dbPath string) (bookout.BookIndexProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteBookProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteBookProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS books (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  author TEXT,
  pages_total INTEGER NOT NULL,
  pages_read INTEGER NOT NULL,
  status TEXT NOT NULL,
  genres TEXT,
  due_date TEXT,
  override_pages_per_min REAL,
  updated_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create books table: %w", err)
	}
	return nil
}

func (s *SQLiteBookProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM books`); err != nil {
		return fmt.Errorf("reset books: %w", err)
	}
	return nil
}

func (s *SQLiteBookProjector) UpsertBook(ctx context.Context, book domain.Book) error {
	const stmt = `
INSERT INTO books (id, title, author, pages_total, pages_read, status, genres, due_date, override_pages_per_min, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  title=excluded.title,
  author=excluded.author,
  pages_total=excluded.pages_total,
  pages_read=excluded.pages_read,
  status=excluded.status,
  genres=excluded.genres,
  due_date=excluded.due_date,
  override_pages_per_min=excluded.override_pages_per_min,
  updated_at=excluded.updated_at;
`
	dueDate := ""
	if !book.DueDate.IsZero() {
		dueDate = book.DueDate.Format("2006-01-02")
	}
	_, err := s.db.ExecContext(ctx, stmt,
		book.ID,
		book.Title,
		book.Author,
		book.PagesTotal,
		book.PagesRead,
		string(book.Status),
		strings.Join(book.Genres, ","),
		dueDate,
		book.OverridePagesPerMin,
		book.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert book: %w", err)
	}
	return nil
}

func (s *SQLiteBookProjector) DeleteBook(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}
