package service

import (
	"context"
	"fmt"
	"time"

	"shelflife/internal/modules/session/domain"
	sessionout "shelflife/internal/modules/session/port/out"
	"shelflife/internal/platform/clock"
	"shelflife/internal/platform/id"
)

type SessionService struct {
	clock clock.Clock
	idGen id.Generator
	store sessionout.SessionStore
}

func NewSessionService(clock clock.Clock, idGen id.Generator, store sessionout.SessionStore) *SessionService {
	return &SessionService{clock: clock, idGen: idGen, store: store}
}

func (s *SessionService) Start(_ context.Context, bookID, bookTitle string) (domain.ActiveSession, error) {
	if bookID == "" {
		return domain.ActiveSession{}, fmt.Errorf("book id is required")
	}
	return domain.NewActiveSession(s.idGen.New(), bookID, bookTitle, s.clock.Now()), nil
}

func (s *SessionService) Pause(active *domain.ActiveSession) error {
	return active.Pause(s.clock.Now())
}

func (s *SessionService) Resume(active *domain.ActiveSession) error {
	return active.Resume(s.clock.Now())
}

func (s *SessionService) Elapsed(active domain.ActiveSession) time.Duration {
	return active.Elapsed(s.clock.Now())
}

// Finalize derives the session totals and appends the session to
// history. The active record itself is the caller's to clear.
func (s *SessionService) Finalize(ctx context.Context, active domain.ActiveSession, pagesBefore, endingPage int, excludeFromPace bool) (domain.Session, string, error) {
	session := active.Finalize(s.clock.Now(), pagesBefore, endingPage, excludeFromPace)
	path, err := s.store.Save(ctx, session)
	if err != nil {
		return domain.Session{}, "", err
	}
	return session, path, nil
}

func (s *SessionService) History(ctx context.Context, bookID string) ([]domain.Session, error) {
	if bookID == "" {
		return s.store.List(ctx)
	}
	return s.store.ListByBook(ctx, bookID)
}
