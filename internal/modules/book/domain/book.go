package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	apperrors "shelflife/internal/platform/errors"
)

const SchemaVersion = 1

type Status string

const (
	StatusCurrent   Status = "current"
	StatusCompleted Status = "completed"
	StatusDNF       Status = "dnf"
)

type Rating string

const (
	RatingThumbsUp   Rating = "thumbs_up"
	RatingThumbsDown Rating = "thumbs_down"
)

type Book struct {
	ID             string
	Title          string
	Author         string
	PagesTotal     int
	PagesRead      int
	Status         Status
	DateStarted    time.Time
	DateFinished   time.Time
	DateAbandoned  time.Time
	DueDate        time.Time
	Genres         []string
	Rating         Rating
	RatingsHistory []Rating
	// OverridePagesPerMin substitutes for measured pace until the first
	// non-excluded session records a positive pace, which deletes it.
	OverridePagesPerMin float64
	CoverURL            string
	Description         string
	Slug                string
	NotePath            string
	AddedAt             time.Time
	UpdatedAt           time.Time
}

func (s Status) Validate() error {
	switch s {
	case StatusCurrent, StatusCompleted, StatusDNF:
		return nil
	default:
		return fmt.Errorf("unsupported book status %q", string(s))
	}
}

func (r Rating) Validate() error {
	switch r {
	case "", RatingThumbsUp, RatingThumbsDown:
		return nil
	default:
		return fmt.Errorf("unsupported rating %q", string(r))
	}
}

func (b Book) Validate() error {
	if strings.TrimSpace(b.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(b.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(b.Slug) == "" {
		return fmt.Errorf("slug is required")
	}
	if err := b.Status.Validate(); err != nil {
		return err
	}
	if err := b.Rating.Validate(); err != nil {
		return err
	}
	if b.PagesTotal <= 0 {
		return fmt.Errorf("pages total must be positive, got %d", b.PagesTotal)
	}
	if b.PagesRead < 0 || b.PagesRead > b.PagesTotal {
		return fmt.Errorf("pages read %d outside [0,%d]", b.PagesRead, b.PagesTotal)
	}
	if b.OverridePagesPerMin < 0 {
		return fmt.Errorf("override pace must not be negative")
	}
	return nil
}

// SetOverridePace stores a manual pages-per-minute substitute. Only
// positive finite values are accepted; anything else is rejected
// without touching the book.
func (b *Book) SetOverridePace(value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return apperrors.ErrInvalidInput
	}
	b.OverridePagesPerMin = value
	return nil
}

func (b *Book) ClearOverridePace() {
	b.OverridePagesPerMin = 0
}

// RecordRating appends to the rating history and keeps the single
// rating field in sync for list cards. Skipping a rating clears the
// field but leaves history untouched.
func (b *Book) RecordRating(rating Rating) error {
	if err := rating.Validate(); err != nil {
		return err
	}
	if rating == "" {
		b.Rating = ""
		return nil
	}
	b.RatingsHistory = append(b.RatingsHistory, rating)
	b.Rating = rating
	return nil
}

type BookDocument struct {
	Book Book
	Body string
}

// GenreCount is one slice of the genre breakdown: how many books carry
// the genre and how many of those were finished.
type GenreCount struct {
	Name      string
	Total     int
	Completed int
}

func hasGenre(book Book, genre string) bool {
	for _, g := range book.Genres {
		if strings.EqualFold(g, genre) {
			return true
		}
	}
	return false
}

// HasGenre reports whether the book is tagged with the given genre.
func (b Book) HasGenre(genre string) bool {
	return hasGenre(b, genre)
}
