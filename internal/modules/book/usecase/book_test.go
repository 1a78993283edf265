package usecase_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	bookoutadapter "shelflife/internal/modules/book/adapter/out"
	"shelflife/internal/modules/book/dto"
	bookin "shelflife/internal/modules/book/port/in"
	"shelflife/internal/modules/book/service"
	"shelflife/internal/modules/book/usecase"
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
	return fmt.Sprintf("book-%d", s.n)
}

type stubGuard struct {
	active bool
}

func (g *stubGuard) HasActive(context.Context) (bool, error) { return g.active, nil }

func newBooks(t *testing.T) (bookin.Usecase, *fakeClock, *stubGuard, string) {
	t.Helper()
	library := t.TempDir()
	clk := &fakeClock{now: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
	guard := &stubGuard{}

	store := bookoutadapter.NewNoteBookStore(library)
	projector, err := bookoutadapter.NewSQLiteBookProjector(filepath.Join(library, ".shelflife", "shelflife.db"))
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	uc := usecase.NewInteractor(service.NewBookService(clk, &seqID{}, store, projector), guard)
	return uc, clk, guard, library
}

func TestAddWritesNoteAndBecomesCurrent(t *testing.T) {
	t.Parallel()
	uc, _, _, library := newBooks(t)
	ctx := context.Background()

	out, err := uc.Add(ctx, dto.AddInput{
		Title:      "The Hobbit",
		Author:     "J.R.R. Tolkien",
		PagesTotal: 300,
		DueDate:    "2026-03-20",
		Genres:     []string{"Fantasy"},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if out.Status != "current" {
		t.Fatalf("status = %q, want current", out.Status)
	}

	note, err := os.ReadFile(filepath.Join(library, "books", "the-hobbit.md"))
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	text := string(note)
	if !strings.Contains(text, "title: The Hobbit") || !strings.Contains(text, "2026-03-20") {
		t.Fatalf("note frontmatter missing fields:\n%s", text)
	}

	current, err := uc.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if current.ID != out.ID {
		t.Fatalf("current = %s, want %s", current.ID, out.ID)
	}

	// A second add needs explicit permission to replace the current read.
	if _, err := uc.Add(ctx, dto.AddInput{Title: "Dune", PagesTotal: 600}); err == nil {
		t.Fatal("want error adding over a current book without abandon-current")
	}
	if _, err := uc.Add(ctx, dto.AddInput{Title: "Dune", PagesTotal: 600, AbandonCurrent: true}); err != nil {
		t.Fatalf("add with abandon-current: %v", err)
	}
	first, err := uc.Get(ctx, out.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if first.Status != "dnf" || first.DateAbandoned.IsZero() {
		t.Fatalf("displaced book = %+v, want dnf with abandon date", first)
	}
}

func TestGuardBlocksLifecycleWhileReading(t *testing.T) {
	t.Parallel()
	uc, _, guard, _ := newBooks(t)
	ctx := context.Background()

	out, err := uc.Add(ctx, dto.AddInput{Title: "Dune", PagesTotal: 600})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	guard.active = true
	if _, err := uc.Abandon(ctx, out.ID); err != apperrors.ErrActiveSessionExists {
		t.Fatalf("abandon: err = %v, want ErrActiveSessionExists", err)
	}
	if err := uc.Delete(ctx, out.ID); err != apperrors.ErrActiveSessionExists {
		t.Fatalf("delete: err = %v, want ErrActiveSessionExists", err)
	}
	// Reads and page updates stay allowed.
	if _, err := uc.Get(ctx, out.ID); err != nil {
		t.Fatalf("get during session: %v", err)
	}
	if _, err := uc.ApplySessionResult(ctx, dto.SessionResultInput{BookID: out.ID, EndingPage: 50}); err != nil {
		t.Fatalf("apply session result during session: %v", err)
	}
}

func TestRereadResetsProgressAndResumeKeepsIt(t *testing.T) {
	t.Parallel()
	uc, clk, _, _ := newBooks(t)
	ctx := context.Background()

	out, err := uc.Add(ctx, dto.AddInput{Title: "Dune", PagesTotal: 600})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := uc.ApplySessionResult(ctx, dto.SessionResultInput{BookID: out.ID, EndingPage: 200}); err != nil {
		t.Fatalf("apply pages: %v", err)
	}
	if _, err := uc.Abandon(ctx, out.ID); err != nil {
		t.Fatalf("abandon: %v", err)
	}

	resumed, err := uc.Resume(ctx, out.ID, false)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if resumed.Status != "current" || resumed.PagesRead != 200 {
		t.Fatalf("resumed = %+v, want current at page 200", resumed)
	}

	started := resumed.DateStarted
	clk.Advance(48 * time.Hour)
	reread, err := uc.Reread(ctx, out.ID, false)
	if err != nil {
		t.Fatalf("reread: %v", err)
	}
	if reread.PagesRead != 0 {
		t.Fatalf("pages after reread = %d, want 0", reread.PagesRead)
	}
	if !reread.DateStarted.After(started) {
		t.Fatalf("reread must refresh the start date: %v vs %v", reread.DateStarted, started)
	}
}

func TestRatingHistoryAppends(t *testing.T) {
	t.Parallel()
	uc, _, _, _ := newBooks(t)
	ctx := context.Background()

	out, err := uc.Add(ctx, dto.AddInput{Title: "Novella", PagesTotal: 90})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := uc.ApplySessionResult(ctx, dto.SessionResultInput{BookID: out.ID, EndingPage: 90}); err != nil {
		t.Fatalf("finish book: %v", err)
	}

	if _, err := uc.Rate(ctx, out.ID, "thumbs_down"); err != nil {
		t.Fatalf("rate: %v", err)
	}
	detail, err := uc.Rate(ctx, out.ID, "thumbs_up")
	if err != nil {
		t.Fatalf("re-rate: %v", err)
	}
	if detail.Rating != "thumbs_up" {
		t.Fatalf("rating = %q", detail.Rating)
	}
	if len(detail.RatingsHistory) != 2 || detail.RatingsHistory[0] != "thumbs_down" {
		t.Fatalf("history = %v", detail.RatingsHistory)
	}

	if _, err := uc.Rate(ctx, out.ID, "five_stars"); err == nil {
		t.Fatal("want error for unknown rating value")
	}
}

func TestListFiltersByGenreAndGenreStats(t *testing.T) {
	t.Parallel()
	uc, _, _, _ := newBooks(t)
	ctx := context.Background()

	a, err := uc.Add(ctx, dto.AddInput{Title: "A", PagesTotal: 100, Genres: []string{"Fantasy", "Classics"}})
	if err != nil {
		t.Fatalf("add a: %v", err)
	}
	if _, err := uc.ApplySessionResult(ctx, dto.SessionResultInput{BookID: a.ID, EndingPage: 100}); err != nil {
		t.Fatalf("finish a: %v", err)
	}
	if _, err := uc.Add(ctx, dto.AddInput{Title: "B", PagesTotal: 100, Genres: []string{"Fantasy"}}); err != nil {
		t.Fatalf("add b: %v", err)
	}

	fantasy, err := uc.List(ctx, "fantasy")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(fantasy) != 2 {
		t.Fatalf("fantasy books = %d, want 2", len(fantasy))
	}
	classics, err := uc.List(ctx, "Classics")
	if err != nil {
		t.Fatalf("list classics: %v", err)
	}
	if len(classics) != 1 || classics[0].ID != a.ID {
		t.Fatalf("classics = %+v", classics)
	}

	stats, err := uc.GenreStats(ctx)
	if err != nil {
		t.Fatalf("genre stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("stats = %+v", stats)
	}
	if stats[0].Name != "Fantasy" || stats[0].Total != 2 || stats[0].Completed != 1 {
		t.Fatalf("fantasy stats = %+v", stats[0])
	}
}

func TestReindexRebuildsAfterDBLoss(t *testing.T) {
	t.Parallel()
	uc, _, _, library := newBooks(t)
	ctx := context.Background()

	if _, err := uc.Add(ctx, dto.AddInput{Title: "Dune", PagesTotal: 600}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := uc.Reindex(ctx); err != nil {
		t.Fatalf("reindex: %v", err)
	}
	books, err := uc.List(ctx, "")
	if err != nil {
		t.Fatalf("list after reindex: %v", err)
	}
	if len(books) != 1 {
		t.Fatalf("books = %+v", books)
	}
	if _, err := os.Stat(filepath.Join(library, "books", "dune.md")); err != nil {
		t.Fatalf("note missing after reindex: %v", err)
	}
}
