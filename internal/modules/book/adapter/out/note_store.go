package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"shelflife/internal/modules/book/domain"
	bookout "shelflife/internal/modules/book/port/out"
	apperrors "shelflife/internal/platform/errors"
	"shelflife/internal/platform/markdown"
)

// NoteBookStore keeps every book as a markdown note with YAML
// frontmatter under <library>/books. The note body is free-form and
// preserved across saves.
type NoteBookStore struct {
	libraryPath string
}

func NewNoteBookStore(libraryPath string) bookout.BookStore {
	return &NoteBookStore{libraryPath: libraryPath}
}

func (s *NoteBookStore) Save(_ context.Context, document domain.BookDocument) (string, error) {
	book := document.Book
	notePath := filepath.Join(s.libraryPath, "books", book.Slug+".md")
	if err := os.MkdirAll(filepath.Dir(notePath), 0o755); err != nil {
		return "", fmt.Errorf("create books directory: %w", err)
	}

	body := document.Body
	if existing, err := os.ReadFile(notePath); err == nil {
		_, existingBody, splitErr := markdown.SplitFrontmatter(string(existing))
		if splitErr == nil && strings.TrimSpace(body) == "" {
			body = existingBody
		}
	}
	if strings.TrimSpace(body) == "" {
		body = fmt.Sprintf("# %s\n\n%s\n", book.Title, book.Description)
	}

	rendered, err := markdown.RenderFrontmatter(toFrontmatter(book), body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(notePath, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write book note: %w", err)
	}
	return notePath, nil
}

func (s *NoteBookStore) FindByID(ctx context.Context, id string) (domain.BookDocument, error) {
	docs, err := s.List(ctx)
	if err != nil {
		return domain.BookDocument{}, err
	}
	for _, doc := range docs {
		if doc.Book.ID == id {
			return doc, nil
		}
	}
	return domain.BookDocument{}, apperrors.ErrNotFound
}

func (s *NoteBookStore) List(_ context.Context) ([]domain.BookDocument, error) {
	glob := filepath.Join(s.libraryPath, "books", "*.md")
	matches, err := filepath.Glob(glob)
	if err != nil {
		return nil, fmt.Errorf("glob book notes: %w", err)
	}
	sort.Strings(matches)

	out := make([]domain.BookDocument, 0, len(matches))
	for _, path := range matches {
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("read %s: %w", path, readErr)
		}
		meta, body, splitErr := markdown.SplitFrontmatter(string(content))
		if splitErr != nil {
			return nil, fmt.Errorf("parse %s: %w", path, splitErr)
		}
		book, convErr := fromFrontmatter(meta, path)
		if convErr != nil {
			return nil, fmt.Errorf("decode book %s: %w", path, convErr)
		}
		out = append(out, domain.BookDocument{Book: book, Body: body})
	}
	return out, nil
}

func (s *NoteBookStore) Delete(ctx context.Context, id string) error {
	doc, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := os.Remove(doc.Book.NotePath); err != nil {
		return fmt.Errorf("delete book note: %w", err)
	}
	return nil
}

func toFrontmatter(book domain.Book) map[string]any {
	history := make([]string, 0, len(book.RatingsHistory))
	for _, rating := range book.RatingsHistory {
		history = append(history, string(rating))
	}
	meta := map[string]any{
		"schema_version":  domain.SchemaVersion,
		"id":              book.ID,
		"title":           book.Title,
		"author":          book.Author,
		"pages_total":     book.PagesTotal,
		"pages_read":      book.PagesRead,
		"status":          string(book.Status),
		"genres":          book.Genres,
		"rating":          string(book.Rating),
		"ratings_history": history,
		"cover_url":       book.CoverURL,
		"description":     book.Description,
		"added_at":        book.AddedAt.Format(time.RFC3339),
		"updated_at":      book.UpdatedAt.Format(time.RFC3339),
	}
	if book.OverridePagesPerMin > 0 {
		meta["override_pages_per_min"] = book.OverridePagesPerMin
	}
	putTime(meta, "date_started", book.DateStarted)
	putTime(meta, "date_finished", book.DateFinished)
	putTime(meta, "date_abandoned", book.DateAbandoned)
	if !book.DueDate.IsZero() {
		meta["due_date"] = book.DueDate.Format("2006-01-02")
	}
	return meta
}

func fromFrontmatter(meta map[string]any, notePath string) (domain.Book, error) {
	history := []domain.Rating{}
	for _, rating := range markdown.StrSlice(meta["ratings_history"]) {
		history = append(history, domain.Rating(rating))
	}
	book := domain.Book{
		ID:                  markdown.Str(meta["id"]),
		Title:               markdown.Str(meta["title"]),
		Author:              markdown.Str(meta["author"]),
		PagesTotal:          markdown.Int(meta["pages_total"]),
		PagesRead:           markdown.Int(meta["pages_read"]),
		Status:              domain.Status(markdown.Str(meta["status"])),
		Genres:              markdown.StrSlice(meta["genres"]),
		Rating:              domain.Rating(markdown.Str(meta["rating"])),
		RatingsHistory:      history,
		OverridePagesPerMin: markdown.Float(meta["override_pages_per_min"]),
		CoverURL:            markdown.Str(meta["cover_url"]),
		Description:         markdown.Str(meta["description"]),
		NotePath:            notePath,
	}
	book.Slug = strings.TrimSuffix(filepath.Base(notePath), filepath.Ext(notePath))
	book.DateStarted = getTime(meta, "date_started")
	book.DateFinished = getTime(meta, "date_finished")
	book.DateAbandoned = getTime(meta, "date_abandoned")
	book.AddedAt = getTime(meta, "added_at")
	book.UpdatedAt = getTime(meta, "updated_at")
	if raw := markdown.Str(meta["due_date"]); raw != "" {
		due, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return domain.Book{}, fmt.Errorf("parse due date %q: %w", raw, err)
		}
		book.DueDate = due
	}
	if err := book.Validate(); err != nil {
		return domain.Book{}, err
	}
	return book, nil
}

func putTime(meta map[string]any, key string, value time.Time) {
	if !value.IsZero() {
		meta[key] = value.Format(time.RFC3339)
	}
}

func getTime(meta map[string]any, key string) time.Time {
	parsed, _ := time.Parse(time.RFC3339, markdown.Str(meta[key]))
	return parsed
}
