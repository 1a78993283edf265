package service

import (
	"context"

	bookdomain "shelflife/internal/modules/book/domain"
	"shelflife/internal/modules/stats/domain"
	"shelflife/internal/modules/stats/dto"
	statsout "shelflife/internal/modules/stats/port/out"
	"shelflife/internal/platform/clock"
)

type StatsService struct {
	clock    clock.Clock
	sessions statsout.SessionReader
	settings statsout.SettingsStore
}

func NewStatsService(clock clock.Clock, sessions statsout.SessionReader, settings statsout.SettingsStore) *StatsService {
	return &StatsService{clock: clock, sessions: sessions, settings: settings}
}

// BookStats assembles the full stat card for a book: measured pace,
// due-date projections and word estimates, plus raw session totals.
func (s *StatsService) BookStats(ctx context.Context, book bookdomain.Book) (dto.BookStatsOutput, error) {
	sessions, err := s.sessions.ListByBook(ctx, book.ID)
	if err != nil {
		return dto.BookStatsOutput{}, err
	}
	baseline, err := s.baseline(ctx)
	if err != nil {
		return dto.BookStatsOutput{}, err
	}

	pace := domain.ComputePace(book, sessions)
	projection := domain.Project(book, pace, s.clock.Now())
	wordsPerPage := domain.WordsPerPage(baseline.WPM, pace)

	out := dto.BookStatsOutput{
		BookID: book.ID,
		Title:  book.Title,
		Status: string(book.Status),

		PagesTotal:     projection.PagesTotal,
		PagesRead:      projection.PagesRead,
		PagesRemaining: projection.PagesRemaining,

		Pace:         pace,
		PaceOverride: book.OverridePagesPerMin > 0 && pace == book.OverridePagesPerMin,

		ProgressPercent: projection.ProgressPercent,

		HasDueDate:    projection.HasDueDate,
		DaysRemaining: projection.DaysRemaining,
		Overdue:       projection.Overdue,
		AtRisk:        projection.AtRisk,

		PagesPerDay:     projection.PagesPerDay,
		TargetPageToday: projection.TargetPageToday,

		MinutesRemaining: projection.MinutesRemaining,
		SessionMinutes:   projection.SessionMinutes,

		TimeRemainingLabel: projection.TimeRemainingLabel(),
		PagesPerDayLabel:   projection.PagesPerDayLabel(),
		TargetPageLabel:    projection.TargetPageLabel(),
		SessionLengthLabel: projection.SessionLengthLabel(),

		BaselineWPM:  baseline.WPM,
		WordsPerPage: wordsPerPage,
		TotalWords:   domain.TotalWords(book.PagesTotal, wordsPerPage),
		WordsRead:    domain.WordsRead(sessions, book.ID, wordsPerPage),
	}
	for _, session := range sessions {
		out.SessionCount++
		out.TotalMinutes += session.DurationMin
		out.TotalSessionPages += session.Pages
	}
	return out, nil
}

func (s *StatsService) SetBaselineWPM(ctx context.Context, value float64) (dto.BaselineOutput, error) {
	clamped, err := domain.ClampBaselineWPM(value)
	if err != nil {
		return dto.BaselineOutput{}, err
	}
	if err := s.settings.SaveBaselineWPM(ctx, clamped); err != nil {
		return dto.BaselineOutput{}, err
	}
	return dto.BaselineOutput{WPM: clamped}, nil
}

func (s *StatsService) ClearBaselineWPM(ctx context.Context) error {
	return s.settings.ClearBaselineWPM(ctx)
}

func (s *StatsService) GetBaselineWPM(ctx context.Context) (dto.BaselineOutput, error) {
	return s.baseline(ctx)
}

func (s *StatsService) baseline(ctx context.Context) (dto.BaselineOutput, error) {
	value, ok, err := s.settings.BaselineWPM(ctx)
	if err != nil {
		return dto.BaselineOutput{}, err
	}
	if !ok || value <= 0 {
		return dto.BaselineOutput{WPM: domain.DefaultBaselineWPM, Default: true}, nil
	}
	return dto.BaselineOutput{WPM: value}, nil
}
