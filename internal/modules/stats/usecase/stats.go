package usecase

import (
	"context"

	bookdomain "shelflife/internal/modules/book/domain"
	"shelflife/internal/modules/stats/dto"
	statsin "shelflife/internal/modules/stats/port/in"
	statsout "shelflife/internal/modules/stats/port/out"
	"shelflife/internal/modules/stats/service"
)

type Interactor struct {
	svc   *service.StatsService
	books statsout.BookReader
}

var _ statsin.Usecase = (*Interactor)(nil)

func NewInteractor(svc *service.StatsService, books statsout.BookReader) *Interactor {
	return &Interactor{svc: svc, books: books}
}

func (i *Interactor) BookStats(ctx context.Context, bookID string) (dto.BookStatsOutput, error) {
	book, err := i.resolveBook(ctx, bookID)
	if err != nil {
		return dto.BookStatsOutput{}, err
	}
	return i.svc.BookStats(ctx, book)
}

func (i *Interactor) SetBaselineWPM(ctx context.Context, value float64) (dto.BaselineOutput, error) {
	return i.svc.SetBaselineWPM(ctx, value)
}

func (i *Interactor) ClearBaselineWPM(ctx context.Context) error {
	return i.svc.ClearBaselineWPM(ctx)
}

func (i *Interactor) GetBaselineWPM(ctx context.Context) (dto.BaselineOutput, error) {
	return i.svc.GetBaselineWPM(ctx)
}

func (i *Interactor) resolveBook(ctx context.Context, bookID string) (bookdomain.Book, error) {
	if bookID == "" {
		return i.books.Current(ctx)
	}
	return i.books.FindByID(ctx, bookID)
}
