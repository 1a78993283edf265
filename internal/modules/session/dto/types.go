package dto

import "time"

type StartInput struct {
	// BookID may be empty; the current book is used then.
	BookID string
}

type StartOutput struct {
	SessionID string
	BookID    string
	BookTitle string
	StartedAt time.Time
}

type StatusOutput struct {
	SessionID string
	BookID    string
	BookTitle string
	StartedAt time.Time
	Paused    bool
	Elapsed   time.Duration
	Segments  int
}

type FinalizeInput struct {
	EndingPage      int
	ExcludeFromPace bool
}

type FinalizeOutput struct {
	SessionID   string
	BookID      string
	BookTitle   string
	Path        string
	DurationMin float64
	Pages       int
	PagesPerMin float64
	// PagesReadTotal is the book's page position after the session.
	PagesReadTotal int
	// BookCompleted signals the caller to prompt for a rating.
	BookCompleted bool
}

type SessionOutput struct {
	ID              string
	BookID          string
	StartedAt       time.Time
	EndedAt         time.Time
	DurationMin     float64
	Pages           int
	PagesPerMin     float64
	ExcludeFromPace bool
}
