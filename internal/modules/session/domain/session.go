package domain

import (
	"time"

	apperrors "shelflife/internal/platform/errors"
)

const SchemaVersion = 1

// Segment is one contiguous stretch of reading time. A zero EndedAt
// means the segment is still accumulating; only the last segment of a
// session may be open.
type Segment struct {
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at,omitempty"`
}

func (s Segment) Open() bool {
	return s.EndedAt.IsZero()
}

// ActiveSession is the single in-flight reading interval. It moves
// Active -> Paused and back by closing and appending segments, and
// leaves this type for good through Finalize.
type ActiveSession struct {
	SessionID string    `json:"session_id"`
	BookID    string    `json:"book_id"`
	BookTitle string    `json:"book_title"`
	StartedAt time.Time `json:"started_at"`
	Paused    bool      `json:"paused"`
	Segments  []Segment `json:"segments"`
}

// NewActiveSession opens a session with a single running segment.
func NewActiveSession(sessionID, bookID, bookTitle string, now time.Time) ActiveSession {
	return ActiveSession{
		SessionID: sessionID,
		BookID:    bookID,
		BookTitle: bookTitle,
		StartedAt: now,
		Segments:  []Segment{{StartedAt: now}},
	}
}

// Pause closes the running segment. Fails when the session is already
// paused.
func (s *ActiveSession) Pause(now time.Time) error {
	if s.Paused || len(s.Segments) == 0 {
		return apperrors.ErrInvalidState
	}
	last := &s.Segments[len(s.Segments)-1]
	if !last.Open() {
		return apperrors.ErrInvalidState
	}
	last.EndedAt = now
	s.Paused = true
	return nil
}

// Resume opens a fresh segment. Fails unless the session is paused.
func (s *ActiveSession) Resume(now time.Time) error {
	if !s.Paused {
		return apperrors.ErrInvalidState
	}
	s.Segments = append(s.Segments, Segment{StartedAt: now})
	s.Paused = false
	return nil
}

// Elapsed sums segment durations, counting an open segment up to now.
// Read-only; safe to poll from a live timer display.
func (s ActiveSession) Elapsed(now time.Time) time.Duration {
	var total time.Duration
	for _, segment := range s.Segments {
		end := segment.EndedAt
		if segment.Open() {
			end = now
		}
		total += end.Sub(segment.StartedAt)
	}
	return total
}

// Session is a finalized reading interval, immutable once appended to
// history.
type Session struct {
	ID        string
	BookID    string
	BookTitle string
	StartedAt time.Time
	EndedAt   time.Time
	Segments  []Segment
	// DurationMin keeps fractional minutes; pace math depends on the
	// unrounded value.
	DurationMin     float64
	Pages           int
	PagesPerMin     float64
	ExcludeFromPace bool
}

// Finalize closes the session at now and derives its totals. pagesBefore
// is the book's page count when the session started; endingPage is the
// page the reader stopped on.
func (s ActiveSession) Finalize(now time.Time, pagesBefore, endingPage int, excludeFromPace bool) Session {
	segments := make([]Segment, len(s.Segments))
	copy(segments, s.Segments)
	if last := &segments[len(segments)-1]; last.Open() {
		last.EndedAt = now
	}

	var durationMin float64
	for _, segment := range segments {
		durationMin += segment.EndedAt.Sub(segment.StartedAt).Minutes()
	}

	pages := endingPage - pagesBefore
	if pages < 0 {
		pages = 0
	}
	pagesPerMin := 0.0
	if durationMin > 0 {
		pagesPerMin = float64(pages) / durationMin
	}

	return Session{
		ID:              s.SessionID,
		BookID:          s.BookID,
		BookTitle:       s.BookTitle,
		StartedAt:       s.StartedAt,
		EndedAt:         now,
		Segments:        segments,
		DurationMin:     durationMin,
		Pages:           pages,
		PagesPerMin:     pagesPerMin,
		ExcludeFromPace: excludeFromPace,
	}
}
