package domain_test

import (
	"testing"
	"time"

	"shelflife/internal/modules/archive/domain"
	bookdomain "shelflife/internal/modules/book/domain"
	sessiondomain "shelflife/internal/modules/session/domain"
	apperrors "shelflife/internal/platform/errors"
)

func validBook(id string, status bookdomain.Status) bookdomain.BookDocument {
	return bookdomain.BookDocument{Book: bookdomain.Book{
		ID:         id,
		Title:      "Title " + id,
		Slug:       "title-" + id,
		PagesTotal: 100,
		Status:     status,
	}}
}

func TestNewDerivesSortedDistinctGenres(t *testing.T) {
	t.Parallel()
	first := validBook("b1", bookdomain.StatusCurrent)
	first.Book.Genres = []string{"Fantasy", "history"}
	second := validBook("b2", bookdomain.StatusCompleted)
	second.Book.Genres = []string{"fantasy", "Sci-Fi"}

	archive := domain.New([]bookdomain.BookDocument{first, second}, nil, time.Now())
	want := []string{"Fantasy", "Sci-Fi", "history"}
	if len(archive.Genres) != len(want) {
		t.Fatalf("genres = %v, want %v", archive.Genres, want)
	}
	for i := range want {
		if archive.Genres[i] != want[i] {
			t.Fatalf("genres = %v, want %v", archive.Genres, want)
		}
	}
	if archive.Version != domain.FormatVersion {
		t.Fatalf("version = %q", archive.Version)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	now := time.Now()

	ok := domain.Archive{
		Books:    []bookdomain.BookDocument{validBook("b1", bookdomain.StatusCurrent)},
		Sessions: []sessiondomain.Session{{ID: "s1", BookID: "b1", StartedAt: now, DurationMin: 10, Pages: 5}},
	}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid archive rejected: %v", err)
	}

	cases := []struct {
		name    string
		archive domain.Archive
	}{
		{"duplicate book ids", domain.Archive{Books: []bookdomain.BookDocument{
			validBook("b1", bookdomain.StatusCompleted), validBook("b1", bookdomain.StatusCompleted),
		}}},
		{"two current books", domain.Archive{Books: []bookdomain.BookDocument{
			validBook("b1", bookdomain.StatusCurrent), validBook("b2", bookdomain.StatusCurrent),
		}}},
		{"orphan session", domain.Archive{
			Books:    []bookdomain.BookDocument{validBook("b1", bookdomain.StatusCurrent)},
			Sessions: []sessiondomain.Session{{ID: "s1", BookID: "missing"}},
		}},
		{"session without id", domain.Archive{
			Books:    []bookdomain.BookDocument{validBook("b1", bookdomain.StatusCurrent)},
			Sessions: []sessiondomain.Session{{BookID: "b1"}},
		}},
		{"negative duration", domain.Archive{
			Books:    []bookdomain.BookDocument{validBook("b1", bookdomain.StatusCurrent)},
			Sessions: []sessiondomain.Session{{ID: "s1", BookID: "b1", DurationMin: -1}},
		}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if err := tc.archive.Validate(); err != apperrors.ErrInvalidInput {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}
