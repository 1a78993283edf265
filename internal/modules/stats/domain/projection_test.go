package domain_test

import (
	"testing"
	"time"

	"shelflife/internal/modules/stats/domain"
)

func TestProjectDueDateScenario(t *testing.T) {
	t.Parallel()
	book := paceBook()
	book.PagesRead = 50
	book.DueDate = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	p := domain.Project(book, 2.0, now)
	if p.ProgressPercent != 17 {
		t.Fatalf("progress = %d, want 17", p.ProgressPercent)
	}
	if p.DaysRemaining != 5 {
		t.Fatalf("days remaining = %d, want 5", p.DaysRemaining)
	}
	if p.PagesPerDay != 50 {
		t.Fatalf("pages per day = %d, want 50", p.PagesPerDay)
	}
	if p.TargetPageToday != 100 {
		t.Fatalf("target page = %d, want 100", p.TargetPageToday)
	}
	if p.SessionMinutes != 25 {
		t.Fatalf("session minutes = %v, want 25", p.SessionMinutes)
	}
	// Required 50/day vs expected 2.0*30=60/day with slack 90.
	if p.AtRisk {
		t.Fatal("book should not be at risk")
	}
	if got := p.PagesPerDayLabel(); got != "50" {
		t.Fatalf("pages per day label = %q", got)
	}
	if got := p.SessionLengthLabel(); got != "25m" {
		t.Fatalf("session length label = %q", got)
	}
	if got := p.TimeRemainingLabel(); got != "2h 5m" {
		t.Fatalf("time remaining label = %q", got)
	}
}

func TestProjectEveningShortensDays(t *testing.T) {
	t.Parallel()
	book := paceBook()
	book.PagesRead = 50
	book.DueDate = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	// 4 days and 2 hours before the due timestamp still rounds up to 5
	// days; past 4 days exactly it reads 4.
	now := time.Date(2026, 3, 5, 22, 0, 0, 0, time.UTC)

	if got := domain.Project(book, 2.0, now).DaysRemaining; got != 5 {
		t.Fatalf("days remaining = %d, want 5", got)
	}
	now = time.Date(2026, 3, 6, 2, 0, 0, 0, time.UTC)
	if got := domain.Project(book, 2.0, now).DaysRemaining; got != 4 {
		t.Fatalf("days remaining = %d, want 4", got)
	}
}

func TestProjectOverdue(t *testing.T) {
	t.Parallel()
	book := paceBook()
	book.PagesRead = 50
	book.DueDate = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)

	p := domain.Project(book, 2.0, now)
	if !p.Overdue || !p.AtRisk {
		t.Fatalf("overdue = %v, at risk = %v, want both true", p.Overdue, p.AtRisk)
	}
	if got := p.PagesPerDayLabel(); got != "Overdue!" {
		t.Fatalf("pages per day label = %q", got)
	}
	if got := p.TargetPageLabel(); got != "Overdue!" {
		t.Fatalf("target page label = %q", got)
	}
	if got := p.SessionLengthLabel(); got != domain.Unavailable {
		t.Fatalf("session length label = %q", got)
	}
}

func TestProjectAtRiskThreshold(t *testing.T) {
	t.Parallel()
	book := paceBook()
	book.PagesRead = 0
	book.DueDate = time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	// 150 required pages per day against 1.0*30*1.5 = 45 allowed.
	if p := domain.Project(book, 1.0, now); !p.AtRisk {
		t.Fatal("want at risk when required pace far exceeds habit")
	}
	// A fast enough reader is fine: 150 <= 6.0*30*1.5 = 270.
	if p := domain.Project(book, 6.0, now); p.AtRisk {
		t.Fatal("fast reader should not be at risk")
	}
	// Unknown pace never flags risk before the due date passes.
	if p := domain.Project(book, 0, now); p.AtRisk {
		t.Fatal("unknown pace should not be at risk")
	}
}

func TestProjectNoDueDate(t *testing.T) {
	t.Parallel()
	book := paceBook()
	book.PagesRead = 120
	now := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	p := domain.Project(book, 0, now)
	if p.HasDueDate || p.AtRisk {
		t.Fatalf("unexpected due-date fields: %+v", p)
	}
	if p.ProgressPercent != 40 {
		t.Fatalf("progress = %d, want 40", p.ProgressPercent)
	}
	if got := p.PagesPerDayLabel(); got != domain.Unavailable {
		t.Fatalf("pages per day label = %q", got)
	}
	if got := p.TargetPageLabel(); got != domain.Unavailable {
		t.Fatalf("target page label = %q", got)
	}
	if got := p.TimeRemainingLabel(); got != domain.Unavailable {
		t.Fatalf("time remaining label = %q", got)
	}
}

func TestProjectTargetPageCapsAtTotal(t *testing.T) {
	t.Parallel()
	book := paceBook()
	book.PagesRead = 290
	book.DueDate = time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	p := domain.Project(book, 2.0, now)
	if p.PagesPerDay != 5 {
		t.Fatalf("pages per day = %d, want 5", p.PagesPerDay)
	}
	if p.TargetPageToday != 295 {
		t.Fatalf("target page = %d, want 295", p.TargetPageToday)
	}

	book.PagesRead = 299
	p = domain.Project(book, 2.0, now)
	if p.TargetPageToday != 300 {
		t.Fatalf("target page = %d, want capped 300", p.TargetPageToday)
	}
}
