package in

import (
	"context"

	"shelflife/internal/modules/book/dto"
)

type Usecase interface {
	Add(ctx context.Context, input dto.AddInput) (dto.BookOutput, error)
	List(ctx context.Context, genre string) ([]dto.BookOutput, error)
	Get(ctx context.Context, id string) (dto.BookDetailOutput, error)
	Current(ctx context.Context) (dto.BookDetailOutput, error)
	SetDueDate(ctx context.Context, id, dueDate string) (dto.BookDetailOutput, error)
	Abandon(ctx context.Context, id string) (dto.BookDetailOutput, error)
	Reread(ctx context.Context, id string, abandonCurrent bool) (dto.BookDetailOutput, error)
	Resume(ctx context.Context, id string, abandonCurrent bool) (dto.BookDetailOutput, error)
	Delete(ctx context.Context, id string) error
	Rate(ctx context.Context, id, rating string) (dto.BookDetailOutput, error)
	SetOverridePace(ctx context.Context, id string, pagesPerMin float64) (dto.BookDetailOutput, error)
	ClearOverridePace(ctx context.Context, id string) (dto.BookDetailOutput, error)
	ApplySessionResult(ctx context.Context, input dto.SessionResultInput) (dto.SessionResultOutput, error)
	GenreStats(ctx context.Context) ([]dto.GenreCountOutput, error)
	Reindex(ctx context.Context) error
}
