package dto

import "time"

type AddInput struct {
	Title       string
	Author      string
	PagesTotal  int
	DueDate     string // YYYY-MM-DD, optional
	Genres      []string
	CoverURL    string
	Description string
	// AbandonCurrent marks any existing current book as did-not-finish
	// before the new one takes its place.
	AbandonCurrent bool
}

type BookOutput struct {
	ID         string
	Title      string
	Author     string
	PagesTotal int
	PagesRead  int
	Status     string
	NotePath   string
}

type BookDetailOutput struct {
	ID                  string
	Title               string
	Author              string
	PagesTotal          int
	PagesRead           int
	Status              string
	DateStarted         time.Time
	DateFinished        time.Time
	DateAbandoned       time.Time
	DueDate             time.Time
	Genres              []string
	Rating              string
	RatingsHistory      []string
	OverridePagesPerMin float64
	CoverURL            string
	Description         string
	NotePath            string
}

type SessionResultInput struct {
	BookID string
	// EndingPage is the page the reader stopped on, as reported at
	// session completion.
	EndingPage int
	// ClearOverride deletes any manual pace override; set when the
	// finalized session measured a positive, non-excluded pace.
	ClearOverride bool
}

type SessionResultOutput struct {
	BookID    string
	PagesRead int
	Completed bool
	Title     string
}

type GenreCountOutput struct {
	Name      string
	Total     int
	Completed int
}
