package usecase

import (
	"context"

	bookdomain "shelflife/internal/modules/book/domain"
	bookdto "shelflife/internal/modules/book/dto"
	bookin "shelflife/internal/modules/book/port/in"
	"shelflife/internal/modules/session/domain"
	sessiondto "shelflife/internal/modules/session/dto"
	sessionin "shelflife/internal/modules/session/port/in"
	sessionout "shelflife/internal/modules/session/port/out"
	"shelflife/internal/modules/session/service"
	apperrors "shelflife/internal/platform/errors"
)

type Interactor struct {
	svc         *service.SessionService
	books       bookin.Usecase
	activeStore sessionout.ActiveSessionStore
}

func NewInteractor(svc *service.SessionService, books bookin.Usecase, activeStore sessionout.ActiveSessionStore) sessionin.Usecase {
	return &Interactor{svc: svc, books: books, activeStore: activeStore}
}

func (i *Interactor) Start(ctx context.Context, input sessiondto.StartInput) (sessiondto.StartOutput, error) {
	_, err := i.activeStore.LoadActive(ctx)
	if err == nil {
		return sessiondto.StartOutput{}, apperrors.ErrActiveSessionExists
	}
	if err != apperrors.ErrNoActiveSession {
		return sessiondto.StartOutput{}, err
	}

	book, err := i.resolveBook(ctx, input.BookID)
	if err != nil {
		return sessiondto.StartOutput{}, err
	}
	if book.Status != string(bookdomain.StatusCurrent) {
		return sessiondto.StartOutput{}, apperrors.ErrBookNotCurrent
	}

	active, err := i.svc.Start(ctx, book.ID, book.Title)
	if err != nil {
		return sessiondto.StartOutput{}, err
	}
	if err := i.activeStore.SaveActive(ctx, active); err != nil {
		return sessiondto.StartOutput{}, err
	}
	return sessiondto.StartOutput{
		SessionID: active.SessionID,
		BookID:    active.BookID,
		BookTitle: active.BookTitle,
		StartedAt: active.StartedAt,
	}, nil
}

func (i *Interactor) Pause(ctx context.Context) (sessiondto.StatusOutput, error) {
	active, err := i.activeStore.LoadActive(ctx)
	if err != nil {
		return sessiondto.StatusOutput{}, err
	}
	if err := i.svc.Pause(&active); err != nil {
		return sessiondto.StatusOutput{}, err
	}
	if err := i.activeStore.SaveActive(ctx, active); err != nil {
		return sessiondto.StatusOutput{}, err
	}
	return i.status(active), nil
}

func (i *Interactor) Resume(ctx context.Context) (sessiondto.StatusOutput, error) {
	active, err := i.activeStore.LoadActive(ctx)
	if err != nil {
		return sessiondto.StatusOutput{}, err
	}
	if err := i.svc.Resume(&active); err != nil {
		return sessiondto.StatusOutput{}, err
	}
	if err := i.activeStore.SaveActive(ctx, active); err != nil {
		return sessiondto.StatusOutput{}, err
	}
	return i.status(active), nil
}

// Finalize closes the session, appends it to history, folds the result
// into the book, and clears the active record. A session that measured
// a positive pace and is not excluded deletes the book's manual
// override on the way through.
func (i *Interactor) Finalize(ctx context.Context, input sessiondto.FinalizeInput) (sessiondto.FinalizeOutput, error) {
	active, err := i.activeStore.LoadActive(ctx)
	if err != nil {
		return sessiondto.FinalizeOutput{}, err
	}
	book, err := i.books.Get(ctx, active.BookID)
	if err != nil {
		return sessiondto.FinalizeOutput{}, err
	}

	session, path, err := i.svc.Finalize(ctx, active, book.PagesRead, input.EndingPage, input.ExcludeFromPace)
	if err != nil {
		return sessiondto.FinalizeOutput{}, err
	}

	clearOverride := !session.ExcludeFromPace && session.PagesPerMin > 0
	result, err := i.books.ApplySessionResult(ctx, bookdto.SessionResultInput{
		BookID:        session.BookID,
		EndingPage:    input.EndingPage,
		ClearOverride: clearOverride,
	})
	if err != nil {
		return sessiondto.FinalizeOutput{}, err
	}
	if err := i.activeStore.ClearActive(ctx); err != nil {
		return sessiondto.FinalizeOutput{}, err
	}

	return sessiondto.FinalizeOutput{
		SessionID:      session.ID,
		BookID:         session.BookID,
		BookTitle:      session.BookTitle,
		Path:           path,
		DurationMin:    session.DurationMin,
		Pages:          session.Pages,
		PagesPerMin:    session.PagesPerMin,
		PagesReadTotal: result.PagesRead,
		BookCompleted:  result.Completed,
	}, nil
}

func (i *Interactor) Status(ctx context.Context) (sessiondto.StatusOutput, error) {
	active, err := i.activeStore.LoadActive(ctx)
	if err != nil {
		return sessiondto.StatusOutput{}, err
	}
	return i.status(active), nil
}

func (i *Interactor) History(ctx context.Context, bookID string) ([]sessiondto.SessionOutput, error) {
	sessions, err := i.svc.History(ctx, bookID)
	if err != nil {
		return nil, err
	}
	out := make([]sessiondto.SessionOutput, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, sessiondto.SessionOutput{
			ID:              session.ID,
			BookID:          session.BookID,
			StartedAt:       session.StartedAt,
			EndedAt:         session.EndedAt,
			DurationMin:     session.DurationMin,
			Pages:           session.Pages,
			PagesPerMin:     session.PagesPerMin,
			ExcludeFromPace: session.ExcludeFromPace,
		})
	}
	return out, nil
}

func (i *Interactor) resolveBook(ctx context.Context, bookID string) (bookdto.BookDetailOutput, error) {
	if bookID == "" {
		return i.books.Current(ctx)
	}
	return i.books.Get(ctx, bookID)
}

func (i *Interactor) status(active domain.ActiveSession) sessiondto.StatusOutput {
	return sessiondto.StatusOutput{
		SessionID: active.SessionID,
		BookID:    active.BookID,
		BookTitle: active.BookTitle,
		StartedAt: active.StartedAt,
		Paused:    active.Paused,
		Elapsed:   i.svc.Elapsed(active),
		Segments:  len(active.Segments),
	}
}
