package domain

import (
	"fmt"
	"math"
	"time"

	bookdomain "shelflife/internal/modules/book/domain"
	"shelflife/internal/platform/format"
)

// Daily reading budget assumed when judging whether a due date is at
// risk, and the slack factor applied on top of it.
const (
	baselineReadingMinutesPerDay = 30
	atRiskFactor                 = 1.5
)

// Unavailable is the sentinel shown when a projection has nothing to
// say yet.
const Unavailable = "--"

// Projection is a snapshot of every derived progress figure for one
// book at one instant. All fields are computed up front; the label
// methods only format.
type Projection struct {
	PagesTotal      int
	PagesRead       int
	PagesRemaining  int
	Pace            float64
	ProgressPercent int

	HasDueDate    bool
	DaysRemaining int
	Overdue       bool

	// PagesPerDay and TargetPageToday are zero when there is no due
	// date or the book is overdue.
	PagesPerDay     int
	TargetPageToday int

	// MinutesRemaining and SessionMinutes are zero when the pace is
	// unknown or there is nothing left to project.
	MinutesRemaining float64
	SessionMinutes   float64

	AtRisk bool
}

// Project computes the full projection for a book given its effective
// pace. Day arithmetic deliberately subtracts raw timestamps without
// normalizing to midnight, so a due date can read one day shorter late
// in the evening; this matches the recorded behavior of the stat cards.
func Project(book bookdomain.Book, pace float64, now time.Time) Projection {
	p := Projection{
		PagesTotal: book.PagesTotal,
		PagesRead:  book.PagesRead,
		Pace:       pace,
	}
	if book.PagesTotal > 0 {
		p.ProgressPercent = int(math.Round(100 * float64(book.PagesRead) / float64(book.PagesTotal)))
		p.PagesRemaining = book.PagesTotal - book.PagesRead
	}

	if pace > 0 && p.PagesRemaining > 0 {
		p.MinutesRemaining = float64(p.PagesRemaining) / pace
	}

	if book.DueDate.IsZero() {
		return p
	}
	p.HasDueDate = true
	p.DaysRemaining = int(math.Ceil(book.DueDate.Sub(now).Hours() / 24))
	if p.DaysRemaining <= 0 {
		p.Overdue = true
		p.AtRisk = true
		return p
	}

	p.PagesPerDay = int(math.Ceil(float64(p.PagesRemaining) / float64(p.DaysRemaining)))
	target := book.PagesRead + p.PagesPerDay
	if target > book.PagesTotal {
		target = book.PagesTotal
	}
	p.TargetPageToday = target

	if pace > 0 {
		p.SessionMinutes = float64(p.PagesPerDay) / pace
		requiredPagesPerDay := float64(p.PagesRemaining) / float64(p.DaysRemaining)
		expectedPagesPerDay := pace * baselineReadingMinutesPerDay
		p.AtRisk = requiredPagesPerDay > expectedPagesPerDay*atRiskFactor
	}
	return p
}

// TimeRemainingLabel renders the estimated reading time left, or "--"
// when the pace is unknown or the book is finished.
func (p Projection) TimeRemainingLabel() string {
	if p.Pace == 0 || p.PagesRemaining <= 0 {
		return Unavailable
	}
	return format.Minutes(p.MinutesRemaining)
}

func (p Projection) PagesPerDayLabel() string {
	if !p.HasDueDate {
		return Unavailable
	}
	if p.Overdue {
		return "Overdue!"
	}
	return fmt.Sprintf("%d", p.PagesPerDay)
}

func (p Projection) TargetPageLabel() string {
	if !p.HasDueDate {
		return Unavailable
	}
	if p.Overdue {
		return "Overdue!"
	}
	return fmt.Sprintf("%d", p.TargetPageToday)
}

func (p Projection) SessionLengthLabel() string {
	if p.Pace == 0 || !p.HasDueDate || p.Overdue {
		return Unavailable
	}
	return format.Minutes(p.SessionMinutes)
}
