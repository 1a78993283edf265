package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	archiveoutadapter "shelflife/internal/modules/archive/adapter/out"
	"shelflife/internal/modules/archive/service"
	"shelflife/internal/modules/archive/usecase"
	bookoutadapter "shelflife/internal/modules/book/adapter/out"
	bookdto "shelflife/internal/modules/book/dto"
	bookin "shelflife/internal/modules/book/port/in"
	bookservice "shelflife/internal/modules/book/service"
	bookusecase "shelflife/internal/modules/book/usecase"
	sessionoutadapter "shelflife/internal/modules/session/adapter/out"
	sessiondomain "shelflife/internal/modules/session/domain"
	sessionout "shelflife/internal/modules/session/port/out"
	"shelflife/internal/platform/clock"
	apperrors "shelflife/internal/platform/errors"
	"shelflife/internal/platform/id"
)

type harness struct {
	library     string
	books       bookin.Usecase
	archive     *usecase.Interactor
	sessions    sessionout.SessionStore
	activeStore sessionout.ActiveSessionStore
}

func newHarness(t *testing.T) harness {
	t.Helper()
	library := t.TempDir()
	clk := clock.SystemClock{}
	ids := id.RandomHex{}

	bookStore := bookoutadapter.NewNoteBookStore(library)
	projector, err := bookoutadapter.NewSQLiteBookProjector(filepath.Join(library, ".shelflife", "shelflife.db"))
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	sessionStore := sessionoutadapter.NewNoteSessionStore(library)
	activeStore := sessionoutadapter.NewFileActiveSessionStore(filepath.Join(library, ".shelflife", "active-session.json"))

	books := bookusecase.NewInteractor(bookservice.NewBookService(clk, ids, bookStore, projector), nil)
	svc := service.NewArchiveService(
		clk,
		archiveoutadapter.NewLibrarySnapshotReader(bookStore, sessionStore),
		archiveoutadapter.NewLibraryReplaceWriter(library, bookStore, sessionStore),
		archiveoutadapter.NewJSONCodec(),
	)
	archive := usecase.NewInteractor(svc, books, activeStore)

	return harness{library: library, books: books, archive: archive, sessions: sessionStore, activeStore: activeStore}
}

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	book, err := h.books.Add(ctx, bookdto.AddInput{Title: "The Hobbit", PagesTotal: 300, Genres: []string{"Fantasy"}})
	if err != nil {
		t.Fatalf("add book: %v", err)
	}
	started := time.Now().UTC().Truncate(time.Second)
	if _, err := h.sessions.Save(ctx, sessiondomain.Session{
		ID:          "s1",
		BookID:      book.ID,
		BookTitle:   book.Title,
		StartedAt:   started,
		EndedAt:     started.Add(15 * time.Minute),
		DurationMin: 15,
		Pages:       30,
		PagesPerMin: 2.0,
	}); err != nil {
		t.Fatalf("save session: %v", err)
	}

	path := filepath.Join(h.library, "backup.json")
	exported, err := h.archive.Export(ctx, path)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if exported.Books != 1 || exported.Sessions != 1 || exported.Genres != 1 {
		t.Fatalf("export counts = %+v", exported)
	}

	// Simulate a stale active session and an extra book that the
	// archive does not know about; import must drop both.
	if err := h.activeStore.SaveActive(ctx, sessiondomain.NewActiveSession("sess-x", book.ID, book.Title, time.Now())); err != nil {
		t.Fatalf("save active: %v", err)
	}
	if _, err := h.books.Add(ctx, bookdto.AddInput{Title: "Stray", PagesTotal: 50, AbandonCurrent: true}); err != nil {
		t.Fatalf("add stray: %v", err)
	}

	imported, err := h.archive.Import(ctx, path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if imported.Books != 1 || imported.Sessions != 1 {
		t.Fatalf("import counts = %+v", imported)
	}

	books, err := h.books.List(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(books) != 1 || books[0].Title != "The Hobbit" {
		t.Fatalf("books after import = %+v", books)
	}
	if _, err := h.activeStore.LoadActive(ctx); err != apperrors.ErrNoActiveSession {
		t.Fatalf("active after import: err = %v, want ErrNoActiveSession", err)
	}
	if _, err := os.Stat(filepath.Join(h.library, "books", "the-hobbit.md")); err != nil {
		t.Fatalf("restored note missing: %v", err)
	}

	restored, err := h.sessions.List(ctx)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(restored) != 1 || restored[0].Pages != 30 {
		t.Fatalf("sessions after import = %+v", restored)
	}
}

func TestImportRejectsMalformedArchive(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	path := filepath.Join(h.library, "bad.json")
	if err := os.WriteFile(path, []byte(`{"books":[],"sessions":[{"id":"s1","book_id":"missing"}],"genres":[]}`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := h.archive.Import(context.Background(), path); err == nil {
		t.Fatal("want validation error for orphan session")
	}
}
