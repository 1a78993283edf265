package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"shelflife/internal/modules/book/domain"
	bookout "shelflife/internal/modules/book/port/out"
	"shelflife/internal/platform/clock"
	apperrors "shelflife/internal/platform/errors"
	"shelflife/internal/platform/id"
	"shelflife/internal/platform/slug"
)

type BookService struct {
	clock     clock.Clock
	idGen     id.Generator
	store     bookout.BookStore
	projector bookout.BookIndexProjector
}

func NewBookService(clock clock.Clock, idGen id.Generator, store bookout.BookStore, projector bookout.BookIndexProjector) *BookService {
	return &BookService{clock: clock, idGen: idGen, store: store, projector: projector}
}

func (s *BookService) Add(ctx context.Context, title, author string, pagesTotal int, dueDate, coverURL, description string, genres []string, abandonCurrent bool) (domain.Book, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Book{}, fmt.Errorf("title is required")
	}
	if pagesTotal <= 0 {
		return domain.Book{}, fmt.Errorf("pages total must be positive, got %d", pagesTotal)
	}
	due, err := parseDueDate(dueDate)
	if err != nil {
		return domain.Book{}, err
	}
	if err := s.retireCurrent(ctx, "", abandonCurrent); err != nil {
		return domain.Book{}, err
	}

	now := s.clock.Now()
	book := domain.Book{
		ID:          s.idGen.New(),
		Title:       title,
		Author:      strings.TrimSpace(author),
		PagesTotal:  pagesTotal,
		Status:      domain.StatusCurrent,
		DateStarted: now,
		DueDate:     due,
		Genres:      cleanGenres(genres),
		CoverURL:    coverURL,
		Description: description,
		Slug:        slug.Make(title),
		AddedAt:     now,
		UpdatedAt:   now,
	}
	if err := book.Validate(); err != nil {
		return domain.Book{}, err
	}
	return s.persist(ctx, book)
}

func (s *BookService) List(ctx context.Context, genre string) ([]domain.Book, error) {
	docs, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Book, 0, len(docs))
	for _, doc := range docs {
		if genre != "" && !doc.Book.HasGenre(genre) {
			continue
		}
		out = append(out, doc.Book)
	}
	return out, nil
}

func (s *BookService) Get(ctx context.Context, bookID string) (domain.Book, error) {
	doc, err := s.store.FindByID(ctx, bookID)
	if err != nil {
		return domain.Book{}, err
	}
	return doc.Book, nil
}

// Current returns the single book with status current, or ErrNotFound.
func (s *BookService) Current(ctx context.Context) (domain.Book, error) {
	docs, err := s.store.List(ctx)
	if err != nil {
		return domain.Book{}, err
	}
	for _, doc := range docs {
		if doc.Book.Status == domain.StatusCurrent {
			return doc.Book, nil
		}
	}
	return domain.Book{}, apperrors.ErrNotFound
}

func (s *BookService) SetDueDate(ctx context.Context, bookID, dueDate string) (domain.Book, error) {
	due, err := parseDueDate(dueDate)
	if err != nil {
		return domain.Book{}, err
	}
	return s.mutate(ctx, bookID, func(book *domain.Book) error {
		book.DueDate = due
		return nil
	})
}

func (s *BookService) Abandon(ctx context.Context, bookID string) (domain.Book, error) {
	return s.mutate(ctx, bookID, func(book *domain.Book) error {
		if book.Status != domain.StatusCurrent {
			return apperrors.ErrBookNotCurrent
		}
		book.Status = domain.StatusDNF
		book.DateAbandoned = s.clock.Now()
		return nil
	})
}

// Reread wipes progress and restarts the clock. A fresh DateStarted
// means earlier sessions stop qualifying for pace.
func (s *BookService) Reread(ctx context.Context, bookID string, abandonCurrent bool) (domain.Book, error) {
	if err := s.retireCurrent(ctx, bookID, abandonCurrent); err != nil {
		return domain.Book{}, err
	}
	return s.mutate(ctx, bookID, func(book *domain.Book) error {
		book.PagesRead = 0
		book.Status = domain.StatusCurrent
		book.DateStarted = s.clock.Now()
		book.DateFinished = time.Time{}
		book.DateAbandoned = time.Time{}
		return nil
	})
}

// Resume puts an abandoned book back as the current read without
// resetting progress or pace history.
func (s *BookService) Resume(ctx context.Context, bookID string, abandonCurrent bool) (domain.Book, error) {
	if err := s.retireCurrent(ctx, bookID, abandonCurrent); err != nil {
		return domain.Book{}, err
	}
	return s.mutate(ctx, bookID, func(book *domain.Book) error {
		book.Status = domain.StatusCurrent
		book.DateAbandoned = time.Time{}
		return nil
	})
}

func (s *BookService) Delete(ctx context.Context, bookID string) error {
	if err := s.store.Delete(ctx, bookID); err != nil {
		return err
	}
	return s.projector.DeleteBook(ctx, bookID)
}

func (s *BookService) Rate(ctx context.Context, bookID string, rating domain.Rating) (domain.Book, error) {
	return s.mutate(ctx, bookID, func(book *domain.Book) error {
		return book.RecordRating(rating)
	})
}

func (s *BookService) SetOverridePace(ctx context.Context, bookID string, pagesPerMin float64) (domain.Book, error) {
	return s.mutate(ctx, bookID, func(book *domain.Book) error {
		return book.SetOverridePace(pagesPerMin)
	})
}

func (s *BookService) ClearOverridePace(ctx context.Context, bookID string) (domain.Book, error) {
	return s.mutate(ctx, bookID, func(book *domain.Book) error {
		book.ClearOverridePace()
		return nil
	})
}

// ApplySessionResult folds a finalized session back into the book:
// progress moves to the reported page (clamped to the book length),
// a measured pace may delete the manual override, and reaching the
// last page completes the book.
func (s *BookService) ApplySessionResult(ctx context.Context, bookID string, endingPage int, clearOverride bool) (domain.Book, bool, error) {
	completed := false
	book, err := s.mutate(ctx, bookID, func(book *domain.Book) error {
		pagesRead := endingPage
		if pagesRead > book.PagesTotal {
			pagesRead = book.PagesTotal
		}
		if pagesRead < book.PagesRead {
			pagesRead = book.PagesRead
		}
		book.PagesRead = pagesRead
		if clearOverride {
			book.ClearOverridePace()
		}
		if book.PagesRead == book.PagesTotal {
			book.Status = domain.StatusCompleted
			book.DateFinished = s.clock.Now()
			completed = true
		}
		return nil
	})
	if err != nil {
		return domain.Book{}, false, err
	}
	return book, completed, nil
}

func (s *BookService) GenreStats(ctx context.Context) ([]domain.GenreCount, error) {
	docs, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	byName := map[string]*domain.GenreCount{}
	for _, doc := range docs {
		for _, genre := range doc.Book.Genres {
			entry, ok := byName[genre]
			if !ok {
				entry = &domain.GenreCount{Name: genre}
				byName[genre] = entry
			}
			entry.Total++
			if doc.Book.Status == domain.StatusCompleted {
				entry.Completed++
			}
		}
	}
	out := make([]domain.GenreCount, 0, len(byName))
	for _, entry := range byName {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *BookService) Reindex(ctx context.Context) error {
	if err := s.projector.Reset(ctx); err != nil {
		return err
	}
	docs, err := s.store.List(ctx)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if err := s.projector.UpsertBook(ctx, doc.Book); err != nil {
			return err
		}
	}
	return nil
}

func (s *BookService) mutate(ctx context.Context, bookID string, apply func(*domain.Book) error) (domain.Book, error) {
	doc, err := s.store.FindByID(ctx, bookID)
	if err != nil {
		return domain.Book{}, err
	}
	if err := apply(&doc.Book); err != nil {
		return domain.Book{}, err
	}
	doc.Book.UpdatedAt = s.clock.Now()
	if err := doc.Book.Validate(); err != nil {
		return domain.Book{}, err
	}
	if _, err := s.store.Save(ctx, doc); err != nil {
		return domain.Book{}, err
	}
	if err := s.projector.UpsertBook(ctx, doc.Book); err != nil {
		return domain.Book{}, err
	}
	return doc.Book, nil
}

func (s *BookService) persist(ctx context.Context, book domain.Book) (domain.Book, error) {
	path, err := s.store.Save(ctx, domain.BookDocument{Book: book})
	if err != nil {
		return domain.Book{}, err
	}
	book.NotePath = path
	if err := s.projector.UpsertBook(ctx, book); err != nil {
		return domain.Book{}, err
	}
	return book, nil
}

// retireCurrent clears the way for another book to become current.
// exceptID skips the book that is itself being promoted.
func (s *BookService) retireCurrent(ctx context.Context, exceptID string, abandon bool) error {
	current, err := s.Current(ctx)
	if err == apperrors.ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	if current.ID == exceptID {
		return nil
	}
	if !abandon {
		return fmt.Errorf("%q is already the current read; abandon it first", current.Title)
	}
	if _, err := s.Abandon(ctx, current.ID); err != nil {
		return err
	}
	return nil
}

func parseDueDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	due, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("due date must be YYYY-MM-DD: %w", apperrors.ErrInvalidInput)
	}
	return due, nil
}

func cleanGenres(genres []string) []string {
	out := make([]string, 0, len(genres))
	seen := map[string]bool{}
	for _, genre := range genres {
		genre = strings.TrimSpace(genre)
		if genre == "" || seen[genre] {
			continue
		}
		seen[genre] = true
		out = append(out, genre)
	}
	return out
}
