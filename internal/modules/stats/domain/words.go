package domain

import (
	"math"

	sessiondomain "shelflife/internal/modules/session/domain"
	apperrors "shelflife/internal/platform/errors"
)

const (
	// DefaultBaselineWPM stands in whenever the reader never recorded
	// their own words-per-minute speed.
	DefaultBaselineWPM = 200
	MaxBaselineWPM     = 2000

	fallbackWordsPerPage = 300
	minWordsPerPage      = 150
	maxWordsPerPage      = 600
)

// WordsPerPage infers page density from the reader's baseline speed in
// words per minute and the measured pace in pages per minute: a page
// takes 1/pace minutes, so it holds baseline/pace words. The result is
// clamped to a plausible print range.
func WordsPerPage(baselineWPM, pace float64) int {
	wpp := float64(fallbackWordsPerPage)
	if baselineWPM > 0 && pace > 0 {
		wpp = baselineWPM / pace
	}
	if wpp < minWordsPerPage {
		wpp = minWordsPerPage
	}
	if wpp > maxWordsPerPage {
		wpp = maxWordsPerPage
	}
	return int(math.Round(wpp))
}

func TotalWords(pagesTotal, wordsPerPage int) int {
	return pagesTotal * wordsPerPage
}

// WordsRead estimates words covered in recorded sessions. It sums
// session pages rather than taking the book's page position, so pages
// advanced outside a session do not count as read words.
func WordsRead(sessions []sessiondomain.Session, bookID string, wordsPerPage int) int {
	pages := 0
	for _, session := range sessions {
		if session.BookID == bookID {
			pages += session.Pages
		}
	}
	return pages * wordsPerPage
}

// ClampBaselineWPM normalizes a user-entered baseline speed into
// [0, MaxBaselineWPM]. Non-finite input is rejected outright.
func ClampBaselineWPM(value float64) (float64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, apperrors.ErrInvalidInput
	}
	if value < 0 {
		return 0, nil
	}
	if value > MaxBaselineWPM {
		return MaxBaselineWPM, nil
	}
	return value, nil
}
