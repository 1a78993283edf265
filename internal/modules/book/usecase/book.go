package usecase

import (
	"context"

	"shelflife/internal/modules/book/domain"
	"shelflife/internal/modules/book/dto"
	bookin "shelflife/internal/modules/book/port/in"
	bookout "shelflife/internal/modules/book/port/out"
	"shelflife/internal/modules/book/service"
	apperrors "shelflife/internal/platform/errors"
)

type Interactor struct {
	svc   *service.BookService
	guard bookout.ActiveSessionGuard
}

func NewInteractor(svc *service.BookService, guard bookout.ActiveSessionGuard) bookin.Usecase {
	return &Interactor{svc: svc, guard: guard}
}

func (i *Interactor) Add(ctx context.Context, input dto.AddInput) (dto.BookOutput, error) {
	if err := i.requireIdle(ctx); err != nil {
		return dto.BookOutput{}, err
	}
	book, err := i.svc.Add(ctx, input.Title, input.Author, input.PagesTotal, input.DueDate, input.CoverURL, input.Description, input.Genres, input.AbandonCurrent)
	if err != nil {
		return dto.BookOutput{}, err
	}
	return toOutput(book), nil
}

func (i *Interactor) List(ctx context.Context, genre string) ([]dto.BookOutput, error) {
	books, err := i.svc.List(ctx, genre)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BookOutput, 0, len(books))
	for _, book := range books {
		out = append(out, toOutput(book))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, id string) (dto.BookDetailOutput, error) {
	book, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.BookDetailOutput{}, err
	}
	return toDetail(book), nil
}

func (i *Interactor) Current(ctx context.Context) (dto.BookDetailOutput, error) {
	book, err := i.svc.Current(ctx)
	if err != nil {
		return dto.BookDetailOutput{}, err
	}
	return toDetail(book), nil
}

func (i *Interactor) SetDueDate(ctx context.Context, id, dueDate string) (dto.BookDetailOutput, error) {
	book, err := i.svc.SetDueDate(ctx, id, dueDate)
	if err != nil {
		return dto.BookDetailOutput{}, err
	}
	return toDetail(book), nil
}

func (i *Interactor) Abandon(ctx context.Context, id string) (dto.BookDetailOutput, error) {
	if err := i.requireIdle(ctx); err != nil {
		return dto.BookDetailOutput{}, err
	}
	book, err := i.svc.Abandon(ctx, id)
	if err != nil {
		return dto.BookDetailOutput{}, err
	}
	return toDetail(book), nil
}

func (i *Interactor) Reread(ctx context.Context, id string, abandonCurrent bool) (dto.BookDetailOutput, error) {
	if err := i.requireIdle(ctx); err != nil {
		return dto.BookDetailOutput{}, err
	}
	book, err := i.svc.Reread(ctx, id, abandonCurrent)
	if err != nil {
		return dto.BookDetailOutput{}, err
	}
	return toDetail(book), nil
}

func (i *Interactor) Resume(ctx context.Context, id string, abandonCurrent bool) (dto.BookDetailOutput, error) {
	if err := i.requireIdle(ctx); err != nil {
		return dto.BookDetailOutput{}, err
	}
	book, err := i.svc.Resume(ctx, id, abandonCurrent)
	if err != nil {
		return dto.BookDetailOutput{}, err
	}
	return toDetail(book), nil
}

func (i *Interactor) Delete(ctx context.Context, id string) error {
	if err := i.requireIdle(ctx); err != nil {
		return err
	}
	return i.svc.Delete(ctx, id)
}

func (i *Interactor) Rate(ctx context.Context, id, rating string) (dto.BookDetailOutput, error) {
	book, err := i.svc.Rate(ctx, id, domain.Rating(rating))
	if err != nil {
		return dto.BookDetailOutput{}, err
	}
	return toDetail(book), nil
}

func (i *Interactor) SetOverridePace(ctx context.Context, id string, pagesPerMin float64) (dto.BookDetailOutput, error) {
	book, err := i.svc.SetOverridePace(ctx, id, pagesPerMin)
	if err != nil {
		return dto.BookDetailOutput{}, err
	}
	return toDetail(book), nil
}

func (i *Interactor) ClearOverridePace(ctx context.Context, id string) (dto.BookDetailOutput, error) {
	book, err := i.svc.ClearOverridePace(ctx, id)
	if err != nil {
		return dto.BookDetailOutput{}, err
	}
	return toDetail(book), nil
}

func (i *Interactor) ApplySessionResult(ctx context.Context, input dto.SessionResultInput) (dto.SessionResultOutput, error) {
	book, completed, err := i.svc.ApplySessionResult(ctx, input.BookID, input.EndingPage, input.ClearOverride)
	if err != nil {
		return dto.SessionResultOutput{}, err
	}
	return dto.SessionResultOutput{
		BookID:    book.ID,
		PagesRead: book.PagesRead,
		Completed: completed,
		Title:     book.Title,
	}, nil
}

func (i *Interactor) GenreStats(ctx context.Context) ([]dto.GenreCountOutput, error) {
	counts, err := i.svc.GenreStats(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GenreCountOutput, 0, len(counts))
	for _, count := range counts {
		out = append(out, dto.GenreCountOutput{Name: count.Name, Total: count.Total, Completed: count.Completed})
	}
	return out, nil
}

func (i *Interactor) Reindex(ctx context.Context) error {
	return i.svc.Reindex(ctx)
}

// requireIdle blocks lifecycle changes while a reading session runs,
// so a finalized session always lands on the book it was started for.
func (i *Interactor) requireIdle(ctx context.Context) error {
	if i.guard == nil {
		return nil
	}
	active, err := i.guard.HasActive(ctx)
	if err != nil {
		return err
	}
	if active {
		return apperrors.ErrActiveSessionExists
	}
	return nil
}

func toOutput(book domain.Book) dto.BookOutput {
	return dto.BookOutput{
		ID:         book.ID,
		Title:      book.Title,
		Author:     book.Author,
		PagesTotal: book.PagesTotal,
		PagesRead:  book.PagesRead,
		Status:     string(book.Status),
		NotePath:   book.NotePath,
	}
}

func toDetail(book domain.Book) dto.BookDetailOutput {
	history := make([]string, 0, len(book.RatingsHistory))
	for _, rating := range book.RatingsHistory {
		history = append(history, string(rating))
	}
	return dto.BookDetailOutput{
		ID:                  book.ID,
		Title:               book.Title,
		Author:              book.Author,
		PagesTotal:          book.PagesTotal,
		PagesRead:           book.PagesRead,
		Status:              string(book.Status),
		DateStarted:         book.DateStarted,
		DateFinished:        book.DateFinished,
		DateAbandoned:       book.DateAbandoned,
		DueDate:             book.DueDate,
		Genres:              book.Genres,
		Rating:              string(book.Rating),
		RatingsHistory:      history,
		OverridePagesPerMin: book.OverridePagesPerMin,
		CoverURL:            book.CoverURL,
		Description:         book.Description,
		NotePath:            book.NotePath,
	}
}
