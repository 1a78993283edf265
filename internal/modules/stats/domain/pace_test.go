package domain_test

import (
	"testing"
	"time"

	bookdomain "shelflife/internal/modules/book/domain"
	sessiondomain "shelflife/internal/modules/session/domain"
	"shelflife/internal/modules/stats/domain"
)

var started = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

func paceBook() bookdomain.Book {
	return bookdomain.Book{
		ID:          "book-1",
		Title:       "The Hobbit",
		PagesTotal:  300,
		Status:      bookdomain.StatusCurrent,
		Slug:        "the-hobbit",
		DateStarted: started,
	}
}

func session(bookID string, startOffset time.Duration, minutes float64, pages int, exclude bool) sessiondomain.Session {
	return sessiondomain.Session{
		ID:              "sess",
		BookID:          bookID,
		StartedAt:       started.Add(startOffset),
		DurationMin:     minutes,
		Pages:           pages,
		ExcludeFromPace: exclude,
	}
}

func TestComputePaceAggregatesQualifyingSessions(t *testing.T) {
	t.Parallel()
	book := paceBook()
	sessions := []sessiondomain.Session{
		session("book-1", time.Hour, 15, 30, false),
		session("book-1", 2*time.Hour, 10, 10, false),
	}
	// 40 pages over 25 minutes.
	if got := domain.ComputePace(book, sessions); got != 1.6 {
		t.Fatalf("pace = %v, want 1.6", got)
	}
}

func TestComputePaceSingleSessionScenario(t *testing.T) {
	t.Parallel()
	book := paceBook()
	sessions := []sessiondomain.Session{session("book-1", time.Hour, 15, 30, false)}
	if got := domain.ComputePace(book, sessions); got != 2.0 {
		t.Fatalf("pace = %v, want 2.0", got)
	}
}

func TestComputePaceIgnoresExcludedOtherBooksAndPreStart(t *testing.T) {
	t.Parallel()
	book := paceBook()
	sessions := []sessiondomain.Session{
		session("book-1", time.Hour, 10, 100, true),       // excluded
		session("book-2", time.Hour, 10, 100, false),      // other book
		session("book-1", -24*time.Hour, 10, 100, false),  // before date_started
		session("book-1", 3*time.Hour, 20, 30, false),
	}
	if got := domain.ComputePace(book, sessions); got != 1.5 {
		t.Fatalf("pace = %v, want 1.5", got)
	}
}

func TestComputePaceFallsBackToOverride(t *testing.T) {
	t.Parallel()
	book := paceBook()
	book.OverridePagesPerMin = 1.5

	if got := domain.ComputePace(book, nil); got != 1.5 {
		t.Fatalf("no sessions: pace = %v, want override 1.5", got)
	}

	zeroDuration := []sessiondomain.Session{session("book-1", time.Hour, 0, 5, false)}
	if got := domain.ComputePace(book, zeroDuration); got != 1.5 {
		t.Fatalf("zero duration: pace = %v, want override 1.5", got)
	}

	// A real measured pace wins over the override.
	measured := append(zeroDuration, session("book-1", 2*time.Hour, 10, 30, false))
	if got := domain.ComputePace(book, measured); got != 3.0 {
		t.Fatalf("measured: pace = %v, want 3.0", got)
	}
}

func TestComputePaceZeroWithoutSessionsOrOverride(t *testing.T) {
	t.Parallel()
	if got := domain.ComputePace(paceBook(), nil); got != 0 {
		t.Fatalf("pace = %v, want 0", got)
	}
}

func TestComputePaceWithoutDateStartedCountsEverything(t *testing.T) {
	t.Parallel()
	book := paceBook()
	book.DateStarted = time.Time{}
	sessions := []sessiondomain.Session{session("book-1", -48*time.Hour, 10, 20, false)}
	if got := domain.ComputePace(book, sessions); got != 2.0 {
		t.Fatalf("pace = %v, want 2.0", got)
	}
}
