package out

import (
	"context"

	bookdomain "shelflife/internal/modules/book/domain"
	sessiondomain "shelflife/internal/modules/session/domain"
)

// SettingsStore persists reader-level preferences. BaselineWPM reports
// ok=false when the reader never set a speed, so callers can fall back
// to the default.
type SettingsStore interface {
	BaselineWPM(ctx context.Context) (value float64, ok bool, err error)
	SaveBaselineWPM(ctx context.Context, value float64) error
	ClearBaselineWPM(ctx context.Context) error
}

// BookReader and SessionReader expose just the reads the stat
// calculations need from the other modules' stores.
type BookReader interface {
	FindByID(ctx context.Context, id string) (bookdomain.Book, error)
	Current(ctx context.Context) (bookdomain.Book, error)
}

type SessionReader interface {
	ListByBook(ctx context.Context, bookID string) ([]sessiondomain.Session, error)
}
