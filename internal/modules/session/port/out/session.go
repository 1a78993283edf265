package out

import (
	"context"

	"shelflife/internal/modules/session/domain"
)

type SessionStore interface {
	Save(ctx context.Context, session domain.Session) (string, error)
	ListByBook(ctx context.Context, bookID string) ([]domain.Session, error)
	List(ctx context.Context) ([]domain.Session, error)
}

type ActiveSessionStore interface {
	SaveActive(ctx context.Context, session domain.ActiveSession) error
	LoadActive(ctx context.Context) (domain.ActiveSession, error)
	ClearActive(ctx context.Context) error
}
