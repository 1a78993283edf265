package dto

// BookStatsOutput carries every derived figure for one book: raw
// numbers for programmatic use and pre-rendered labels matching what
// the stat cards display.
type BookStatsOutput struct {
	BookID string
	Title  string
	Status string

	PagesTotal     int
	PagesRead      int
	PagesRemaining int

	Pace         float64
	PaceOverride bool

	ProgressPercent int

	HasDueDate    bool
	DaysRemaining int
	Overdue       bool
	AtRisk        bool

	PagesPerDay     int
	TargetPageToday int

	MinutesRemaining float64
	SessionMinutes   float64

	TimeRemainingLabel string
	PagesPerDayLabel   string
	TargetPageLabel    string
	SessionLengthLabel string

	BaselineWPM  float64
	WordsPerPage int
	TotalWords   int
	WordsRead    int

	SessionCount      int
	TotalMinutes      float64
	TotalSessionPages int
}

type BaselineOutput struct {
	WPM     float64
	Default bool
}
