package in

import (
	"context"

	statsdto "shelflife/internal/modules/stats/dto"
	statsin "shelflife/internal/modules/stats/port/in"
)

type CLIHandler struct {
	usecase statsin.Usecase
}

func NewCLIHandler(usecase statsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) BookStats(ctx context.Context, bookID string) (statsdto.BookStatsOutput, error) {
	return h.usecase.BookStats(ctx, bookID)
}

func (h CLIHandler) SetBaselineWPM(ctx context.Context, value float64) (statsdto.BaselineOutput, error) {
	return h.usecase.SetBaselineWPM(ctx, value)
}

func (h CLIHandler) ClearBaselineWPM(ctx context.Context) error {
	return h.usecase.ClearBaselineWPM(ctx)
}

func (h CLIHandler) GetBaselineWPM(ctx context.Context) (statsdto.BaselineOutput, error) {
	return h.usecase.GetBaselineWPM(ctx)
}
