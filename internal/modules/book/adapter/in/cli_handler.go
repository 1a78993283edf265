package in

import (
	"context"

	bookdto "shelflife/internal/modules/book/dto"
	bookin "shelflife/internal/modules/book/port/in"
)

type CLIHandler struct {
	usecase bookin.Usecase
}

func NewCLIHandler(usecase bookin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, input bookdto.AddInput) (bookdto.BookOutput, error) {
	return h.usecase.Add(ctx, input)
}

func (h CLIHandler) List(ctx context.Context, genre string) ([]bookdto.BookOutput, error) {
	return h.usecase.List(ctx, genre)
}

func (h CLIHandler) Get(ctx context.Context, id string) (bookdto.BookDetailOutput, error) {
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) Current(ctx context.Context) (bookdto.BookDetailOutput, error) {
	return h.usecase.Current(ctx)
}

func (h CLIHandler) SetDueDate(ctx context.Context, id, dueDate string) (bookdto.BookDetailOutput, error) {
	return h.usecase.SetDueDate(ctx, id, dueDate)
}

func (h CLIHandler) Abandon(ctx context.Context, id string) (bookdto.BookDetailOutput, error) {
	return h.usecase.Abandon(ctx, id)
}

func (h CLIHandler) Reread(ctx context.Context, id string, abandonCurrent bool) (bookdto.BookDetailOutput, error) {
	return h.usecase.Reread(ctx, id, abandonCurrent)
}

func (h CLIHandler) Resume(ctx context.Context, id string, abandonCurrent bool) (bookdto.BookDetailOutput, error) {
	return h.usecase.Resume(ctx, id, abandonCurrent)
}

func (h CLIHandler) Delete(ctx context.Context, id string) error {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) Rate(ctx context.Context, id, rating string) (bookdto.BookDetailOutput, error) {
	return h.usecase.Rate(ctx, id, rating)
}

func (h CLIHandler) SetOverridePace(ctx context.Context, id string, pagesPerMin float64) (bookdto.BookDetailOutput, error) {
	return h.usecase.SetOverridePace(ctx, id, pagesPerMin)
}

func (h CLIHandler) ClearOverridePace(ctx context.Context, id string) (bookdto.BookDetailOutput, error) {
	return h.usecase.ClearOverridePace(ctx, id)
}

func (h CLIHandler) GenreStats(ctx context.Context) ([]bookdto.GenreCountOutput, error) {
	return h.usecase.GenreStats(ctx)
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx)
}
