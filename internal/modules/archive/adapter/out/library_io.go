package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"shelflife/internal/modules/archive/domain"
	archiveout "shelflife/internal/modules/archive/port/out"
	bookout "shelflife/internal/modules/book/port/out"
	sessionout "shelflife/internal/modules/session/port/out"
)

// LibrarySnapshotReader collects every book note and session note for
// an export.
type LibrarySnapshotReader struct {
	books    bookout.BookStore
	sessions sessionout.SessionStore
}

func NewLibrarySnapshotReader(books bookout.BookStore, sessions sessionout.SessionStore) archiveout.LibraryReader {
	return &LibrarySnapshotReader{books: books, sessions: sessions}
}

func (r *LibrarySnapshotReader) Snapshot(ctx context.Context) (domain.Archive, error) {
	books, err := r.books.List(ctx)
	if err != nil {
		return domain.Archive{}, err
	}
	sessions, err := r.sessions.List(ctx)
	if err != nil {
		return domain.Archive{}, err
	}
	return domain.Archive{Books: books, Sessions: sessions}, nil
}

// LibraryReplaceWriter wipes the note directories and rewrites them
// from an imported archive through the regular stores, so imported
// notes come out byte-for-byte like locally written ones.
type LibraryReplaceWriter struct {
	libraryPath string
	books       bookout.BookStore
	sessions    sessionout.SessionStore
}

func NewLibraryReplaceWriter(libraryPath string, books bookout.BookStore, sessions sessionout.SessionStore) archiveout.LibraryWriter {
	return &LibraryReplaceWriter{libraryPath: libraryPath, books: books, sessions: sessions}
}

func (w *LibraryReplaceWriter) Replace(ctx context.Context, archive domain.Archive) error {
	for _, dir := range []string{"books", "sessions"} {
		if err := os.RemoveAll(filepath.Join(w.libraryPath, dir)); err != nil {
			return fmt.Errorf("clear %s: %w", dir, err)
		}
	}
	for _, document := range archive.Books {
		if _, err := w.books.Save(ctx, document); err != nil {
			return fmt.Errorf("restore book %q: %w", document.Book.Title, err)
		}
	}
	for _, session := range archive.Sessions {
		if _, err := w.sessions.Save(ctx, session); err != nil {
			return fmt.Errorf("restore session %s: %w", session.ID, err)
		}
	}
	return nil
}
