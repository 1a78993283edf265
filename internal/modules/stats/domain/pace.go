package domain

import (
	bookdomain "shelflife/internal/modules/book/domain"
	sessiondomain "shelflife/internal/modules/session/domain"
)

// ComputePace derives a book's effective pages per minute from its
// session history. Sessions flagged exclude-from-pace and sessions
// started before the book's current start date (a re-read resets it)
// do not qualify. When no qualifying time exists, the manual override
// stands in; failing that, the pace is unknown and reads 0.
func ComputePace(book bookdomain.Book, sessions []sessiondomain.Session) float64 {
	var totalMinutes float64
	var totalPages int
	qualifying := false
	for _, session := range sessions {
		if session.BookID != book.ID || session.ExcludeFromPace {
			continue
		}
		if !book.DateStarted.IsZero() && session.StartedAt.Before(book.DateStarted) {
			continue
		}
		qualifying = true
		totalMinutes += session.DurationMin
		totalPages += session.Pages
	}
	if qualifying && totalMinutes > 0 {
		return float64(totalPages) / totalMinutes
	}
	if book.OverridePagesPerMin > 0 {
		return book.OverridePagesPerMin
	}
	return 0
}
