package out

import (
	"context"

	bookdomain "shelflife/internal/modules/book/domain"
	bookout "shelflife/internal/modules/book/port/out"
	sessiondomain "shelflife/internal/modules/session/domain"
	sessionout "shelflife/internal/modules/session/port/out"
	statsout "shelflife/internal/modules/stats/port/out"
	apperrors "shelflife/internal/platform/errors"
)

// BookReaderAdapter narrows the book store down to the two lookups the
// stat calculations need.
type BookReaderAdapter struct {
	store bookout.BookStore
}

func NewBookReaderAdapter(store bookout.BookStore) statsout.BookReader {
	return &BookReaderAdapter{store: store}
}

func (a *BookReaderAdapter) FindByID(ctx context.Context, id string) (bookdomain.Book, error) {
	document, err := a.store.FindByID(ctx, id)
	if err != nil {
		return bookdomain.Book{}, err
	}
	return document.Book, nil
}

func (a *BookReaderAdapter) Current(ctx context.Context) (bookdomain.Book, error) {
	documents, err := a.store.List(ctx)
	if err != nil {
		return bookdomain.Book{}, err
	}
	for _, document := range documents {
		if document.Book.Status == bookdomain.StatusCurrent {
			return document.Book, nil
		}
	}
	return bookdomain.Book{}, apperrors.ErrNotFound
}

type SessionReaderAdapter struct {
	store sessionout.SessionStore
}

func NewSessionReaderAdapter(store sessionout.SessionStore) statsout.SessionReader {
	return &SessionReaderAdapter{store: store}
}

func (a *SessionReaderAdapter) ListByBook(ctx context.Context, bookID string) ([]sessiondomain.Session, error) {
	return a.store.ListByBook(ctx, bookID)
}
