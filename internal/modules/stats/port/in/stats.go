package in

import (
	"context"

	"shelflife/internal/modules/stats/dto"
)

type Usecase interface {
	// BookStats computes the full stat card for a book; an empty id
	// targets the current read.
	BookStats(ctx context.Context, bookID string) (dto.BookStatsOutput, error)
	SetBaselineWPM(ctx context.Context, value float64) (dto.BaselineOutput, error)
	ClearBaselineWPM(ctx context.Context) error
	GetBaselineWPM(ctx context.Context) (dto.BaselineOutput, error)
}
