package in

import (
	"context"

	"shelflife/internal/modules/session/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	Pause(ctx context.Context) (dto.StatusOutput, error)
	Resume(ctx context.Context) (dto.StatusOutput, error)
	Finalize(ctx context.Context, input dto.FinalizeInput) (dto.FinalizeOutput, error)
	Status(ctx context.Context) (dto.StatusOutput, error)
	History(ctx context.Context, bookID string) ([]dto.SessionOutput, error)
}
