package usecase_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	bookoutadapter "shelflife/internal/modules/book/adapter/out"
	bookdto "shelflife/internal/modules/book/dto"
	bookin "shelflife/internal/modules/book/port/in"
	bookservice "shelflife/internal/modules/book/service"
	bookusecase "shelflife/internal/modules/book/usecase"
	sessionoutadapter "shelflife/internal/modules/session/adapter/out"
	sessiondto "shelflife/internal/modules/session/dto"
	sessionin "shelflife/internal/modules/session/port/in"
	"shelflife/internal/modules/session/service"
	"shelflife/internal/modules/session/usecase"
	apperrors "shelflife/internal/platform/errors"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

type seqID struct {
	n int
}

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

type fixture struct {
	clk     *fakeClock
	books   bookin.Usecase
	session sessionin.Usecase
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	library := t.TempDir()
	clk := &fakeClock{now: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
	ids := &seqID{}

	bookStore := bookoutadapter.NewNoteBookStore(library)
	projector, err := bookoutadapter.NewSQLiteBookProjector(filepath.Join(library, ".shelflife", "shelflife.db"))
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	activeStore := sessionoutadapter.NewFileActiveSessionStore(filepath.Join(library, ".shelflife", "active-session.json"))

	books := bookusecase.NewInteractor(
		bookservice.NewBookService(clk, ids, bookStore, projector),
		bookoutadapter.NewSessionGuardAdapter(activeStore),
	)
	session := usecase.NewInteractor(
		service.NewSessionService(clk, ids, sessionoutadapter.NewNoteSessionStore(library)),
		books,
		activeStore,
	)
	return fixture{clk: clk, books: books, session: session}
}

func TestSessionLifecycleUpdatesBookAndClearsOverride(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	book, err := f.books.Add(ctx, bookdto.AddInput{Title: "The Hobbit", PagesTotal: 300})
	if err != nil {
		t.Fatalf("add book: %v", err)
	}
	if _, err := f.books.SetOverridePace(ctx, book.ID, 1.5); err != nil {
		t.Fatalf("set override: %v", err)
	}

	start, err := f.session.Start(ctx, sessiondto.StartInput{})
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	if start.BookID != book.ID {
		t.Fatalf("session started on %s, want %s", start.BookID, book.ID)
	}

	// Lifecycle changes are blocked while the session runs.
	if _, err := f.books.Add(ctx, bookdto.AddInput{Title: "Other", PagesTotal: 100}); err != apperrors.ErrActiveSessionExists {
		t.Fatalf("add during session: err = %v, want ErrActiveSessionExists", err)
	}
	if _, err := f.session.Start(ctx, sessiondto.StartInput{}); err != apperrors.ErrActiveSessionExists {
		t.Fatalf("second start: err = %v, want ErrActiveSessionExists", err)
	}

	f.clk.Advance(10 * time.Minute)
	if _, err := f.session.Pause(ctx); err != nil {
		t.Fatalf("pause: %v", err)
	}
	f.clk.Advance(30 * time.Minute)
	status, err := f.session.Status(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.Paused || status.Elapsed != 10*time.Minute {
		t.Fatalf("paused status = %+v, want 10m elapsed", status)
	}

	if _, err := f.session.Resume(ctx); err != nil {
		t.Fatalf("resume: %v", err)
	}
	f.clk.Advance(5 * time.Minute)

	out, err := f.session.Finalize(ctx, sessiondto.FinalizeInput{EndingPage: 30})
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if out.DurationMin != 15 {
		t.Fatalf("duration = %v, want 15", out.DurationMin)
	}
	if out.Pages != 30 || out.PagesPerMin != 2.0 {
		t.Fatalf("pages = %d pace = %v, want 30 at 2.0", out.Pages, out.PagesPerMin)
	}
	if out.PagesReadTotal != 30 || out.BookCompleted {
		t.Fatalf("book result = %+v", out)
	}

	// The measured pace supersedes the manual override.
	detail, err := f.books.Get(ctx, book.ID)
	if err != nil {
		t.Fatalf("get book: %v", err)
	}
	if detail.OverridePagesPerMin != 0 {
		t.Fatalf("override = %v, want cleared", detail.OverridePagesPerMin)
	}

	if _, err := f.session.Status(ctx); err != apperrors.ErrNoActiveSession {
		t.Fatalf("status after finalize: err = %v, want ErrNoActiveSession", err)
	}

	history, err := f.session.History(ctx, book.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].DurationMin != 15 {
		t.Fatalf("history = %+v", history)
	}
}

func TestExcludedSessionKeepsOverride(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	book, err := f.books.Add(ctx, bookdto.AddInput{Title: "Dune", PagesTotal: 600})
	if err != nil {
		t.Fatalf("add book: %v", err)
	}
	if _, err := f.books.SetOverridePace(ctx, book.ID, 1.5); err != nil {
		t.Fatalf("set override: %v", err)
	}

	if _, err := f.session.Start(ctx, sessiondto.StartInput{}); err != nil {
		t.Fatalf("start: %v", err)
	}
	f.clk.Advance(20 * time.Minute)
	if _, err := f.session.Finalize(ctx, sessiondto.FinalizeInput{EndingPage: 40, ExcludeFromPace: true}); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	detail, err := f.books.Get(ctx, book.ID)
	if err != nil {
		t.Fatalf("get book: %v", err)
	}
	if detail.OverridePagesPerMin != 1.5 {
		t.Fatalf("override = %v, want untouched 1.5", detail.OverridePagesPerMin)
	}
}

func TestFinalizeAtLastPageCompletesBook(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	book, err := f.books.Add(ctx, bookdto.AddInput{Title: "Novella", PagesTotal: 90})
	if err != nil {
		t.Fatalf("add book: %v", err)
	}
	if _, err := f.session.Start(ctx, sessiondto.StartInput{}); err != nil {
		t.Fatalf("start: %v", err)
	}
	f.clk.Advance(45 * time.Minute)

	out, err := f.session.Finalize(ctx, sessiondto.FinalizeInput{EndingPage: 90})
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if !out.BookCompleted {
		t.Fatal("book should be completed at the last page")
	}

	detail, err := f.books.Get(ctx, book.ID)
	if err != nil {
		t.Fatalf("get book: %v", err)
	}
	if detail.Status != "completed" || detail.DateFinished.IsZero() {
		t.Fatalf("book after completion = %+v", detail)
	}
	// A finished book cannot host a new session.
	if _, err := f.session.Start(ctx, sessiondto.StartInput{BookID: book.ID}); err != apperrors.ErrBookNotCurrent {
		t.Fatalf("start on finished book: err = %v, want ErrBookNotCurrent", err)
	}
}

func TestStartWithoutCurrentBook(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	if _, err := f.session.Start(context.Background(), sessiondto.StartInput{}); err != apperrors.ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
