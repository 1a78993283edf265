package in

import (
	"context"

	sessiondto "shelflife/internal/modules/session/dto"
	sessionin "shelflife/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, bookID string) (sessiondto.StartOutput, error) {
	return h.usecase.Start(ctx, sessiondto.StartInput{BookID: bookID})
}

func (h CLIHandler) Pause(ctx context.Context) (sessiondto.StatusOutput, error) {
	return h.usecase.Pause(ctx)
}

func (h CLIHandler) Resume(ctx context.Context) (sessiondto.StatusOutput, error) {
	return h.usecase.Resume(ctx)
}

func (h CLIHandler) Finalize(ctx context.Context, endingPage int, excludeFromPace bool) (sessiondto.FinalizeOutput, error) {
	return h.usecase.Finalize(ctx, sessiondto.FinalizeInput{EndingPage: endingPage, ExcludeFromPace: excludeFromPace})
}

func (h CLIHandler) Status(ctx context.Context) (sessiondto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) History(ctx context.Context, bookID string) ([]sessiondto.SessionOutput, error) {
	return h.usecase.History(ctx, bookID)
}
