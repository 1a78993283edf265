package out

import (
	"context"

	bookout "shelflife/internal/modules/book/port/out"
	sessionout "shelflife/internal/modules/session/port/out"
	apperrors "shelflife/internal/platform/errors"
)

// SessionGuardAdapter answers "is a session running?" by probing the
// session module's active-session store.
type SessionGuardAdapter struct {
	store sessionout.ActiveSessionStore
}

func NewSessionGuardAdapter(store sessionout.ActiveSessionStore) bookout.ActiveSessionGuard {
	return &SessionGuardAdapter{store: store}
}

func (a *SessionGuardAdapter) HasActive(ctx context.Context) (bool, error) {
	_, err := a.store.LoadActive(ctx)
	if err == apperrors.ErrNoActiveSession {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
