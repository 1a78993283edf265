package domain

import (
	"sort"
	"strings"
	"time"

	bookdomain "shelflife/internal/modules/book/domain"
	sessiondomain "shelflife/internal/modules/session/domain"
	apperrors "shelflife/internal/platform/errors"
)

// FormatVersion tags exported payloads so a future importer can tell
// old archives apart.
const FormatVersion = "1.0"

// Archive is the complete transportable state of a library: every
// book with its note body, every finalized session, and the distinct
// genre list.
type Archive struct {
	Books      []bookdomain.BookDocument
	Sessions   []sessiondomain.Session
	Genres     []string
	ExportDate time.Time
	Version    string
}

// New assembles an archive snapshot. Genres are derived from the books
// so the list can never drift from what the shelves actually carry.
func New(books []bookdomain.BookDocument, sessions []sessiondomain.Session, now time.Time) Archive {
	return Archive{
		Books:      books,
		Sessions:   sessions,
		Genres:     collectGenres(books),
		ExportDate: now,
		Version:    FormatVersion,
	}
}

// Validate checks an imported archive before it replaces local state.
// Every book must pass its own validation and every session must point
// at a book in the payload.
func (a Archive) Validate() error {
	ids := make(map[string]bool, len(a.Books))
	current := 0
	for _, document := range a.Books {
		if err := document.Book.Validate(); err != nil {
			return err
		}
		if ids[document.Book.ID] {
			return apperrors.ErrInvalidInput
		}
		ids[document.Book.ID] = true
		if document.Book.Status == bookdomain.StatusCurrent {
			current++
		}
	}
	if current > 1 {
		return apperrors.ErrInvalidInput
	}
	for _, session := range a.Sessions {
		if session.ID == "" || !ids[session.BookID] {
			return apperrors.ErrInvalidInput
		}
		if session.DurationMin < 0 || session.Pages < 0 {
			return apperrors.ErrInvalidInput
		}
	}
	return nil
}

func collectGenres(books []bookdomain.BookDocument) []string {
	seen := map[string]bool{}
	genres := []string{}
	for _, document := range books {
		for _, genre := range document.Book.Genres {
			key := strings.ToLower(genre)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			genres = append(genres, genre)
		}
	}
	sort.Strings(genres)
	return genres
}
