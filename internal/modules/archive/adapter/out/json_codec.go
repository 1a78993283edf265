package out

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"shelflife/internal/modules/archive/domain"
	archiveout "shelflife/internal/modules/archive/port/out"
	bookdomain "shelflife/internal/modules/book/domain"
	sessiondomain "shelflife/internal/modules/session/domain"
	apperrors "shelflife/internal/platform/errors"
	"shelflife/internal/platform/slug"
)

// JSONCodec reads and writes the archive file. Field names follow the
// original export format so old archives import cleanly.
type JSONCodec struct{}

func NewJSONCodec() archiveout.ArchiveCodec {
	return JSONCodec{}
}

type archiveFile struct {
	Books      []bookRecord    `json:"books"`
	Sessions   []sessionRecord `json:"sessions"`
	Genres     []string        `json:"genres"`
	ExportDate time.Time       `json:"exportDate"`
	Version    string          `json:"version"`
}

type bookRecord struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	Author              string   `json:"author"`
	PagesTotal          int      `json:"pages_total"`
	PagesRead           int      `json:"pages_read"`
	Status              string   `json:"status"`
	DateStarted         string   `json:"date_started,omitempty"`
	DateFinished        string   `json:"date_finished,omitempty"`
	DateAbandoned       string   `json:"date_abandoned,omitempty"`
	DueDate             string   `json:"due_date,omitempty"`
	Genres              []string `json:"genres,omitempty"`
	Rating              string   `json:"rating,omitempty"`
	RatingsHistory      []string `json:"ratings_history,omitempty"`
	OverridePagesPerMin float64  `json:"override_pages_per_min,omitempty"`
	CoverURL            string   `json:"cover_url,omitempty"`
	Description         string   `json:"description,omitempty"`
	Notes               string   `json:"notes,omitempty"`
}

type sessionRecord struct {
	ID              string          `json:"id"`
	BookID          string          `json:"book_id"`
	BookTitle       string          `json:"book_title,omitempty"`
	StartTime       time.Time       `json:"start_time"`
	EndTime         time.Time       `json:"end_time"`
	Segments        []segmentRecord `json:"segments"`
	DurationMin     float64         `json:"duration_minutes"`
	Pages           int             `json:"pages_read"`
	PagesPerMin     float64         `json:"pages_per_min"`
	ExcludeFromPace bool            `json:"exclude_from_pace"`
}

type segmentRecord struct {
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
}

func (JSONCodec) Write(path string, archive domain.Archive) error {
	file := archiveFile{
		Books:      make([]bookRecord, 0, len(archive.Books)),
		Sessions:   make([]sessionRecord, 0, len(archive.Sessions)),
		Genres:     archive.Genres,
		ExportDate: archive.ExportDate,
		Version:    archive.Version,
	}
	for _, document := range archive.Books {
		file.Books = append(file.Books, toBookRecord(document))
	}
	for _, session := range archive.Sessions {
		file.Sessions = append(file.Sessions, toSessionRecord(session))
	}

	payload, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal archive: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write archive file: %w", err)
	}
	return nil
}

func (JSONCodec) Read(path string) (domain.Archive, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return domain.Archive{}, fmt.Errorf("read archive file: %w", err)
	}
	file := archiveFile{}
	if err := json.Unmarshal(payload, &file); err != nil {
		return domain.Archive{}, fmt.Errorf("decode archive: %w", err)
	}
	if file.Books == nil || file.Sessions == nil || file.Genres == nil {
		return domain.Archive{}, fmt.Errorf("archive missing books, sessions or genres: %w", apperrors.ErrInvalidInput)
	}

	archive := domain.Archive{
		Books:      make([]bookdomain.BookDocument, 0, len(file.Books)),
		Sessions:   make([]sessiondomain.Session, 0, len(file.Sessions)),
		Genres:     file.Genres,
		ExportDate: file.ExportDate,
		Version:    file.Version,
	}
	for _, record := range file.Books {
		document, err := fromBookRecord(record)
		if err != nil {
			return domain.Archive{}, err
		}
		archive.Books = append(archive.Books, document)
	}
	for _, record := range file.Sessions {
		archive.Sessions = append(archive.Sessions, fromSessionRecord(record))
	}
	return archive, nil
}

func toBookRecord(document bookdomain.BookDocument) bookRecord {
	book := document.Book
	history := make([]string, 0, len(book.RatingsHistory))
	for _, rating := range book.RatingsHistory {
		history = append(history, string(rating))
	}
	return bookRecord{
		ID:                  book.ID,
		Title:               book.Title,
		Author:              book.Author,
		PagesTotal:          book.PagesTotal,
		PagesRead:           book.PagesRead,
		Status:              string(book.Status),
		DateStarted:         formatTime(book.DateStarted),
		DateFinished:        formatTime(book.DateFinished),
		DateAbandoned:       formatTime(book.DateAbandoned),
		DueDate:             formatDate(book.DueDate),
		Genres:              book.Genres,
		Rating:              string(book.Rating),
		RatingsHistory:      history,
		OverridePagesPerMin: book.OverridePagesPerMin,
		CoverURL:            book.CoverURL,
		Description:         book.Description,
		Notes:               document.Body,
	}
}

func fromBookRecord(record bookRecord) (bookdomain.BookDocument, error) {
	history := make([]bookdomain.Rating, 0, len(record.RatingsHistory))
	for _, rating := range record.RatingsHistory {
		history = append(history, bookdomain.Rating(rating))
	}
	book := bookdomain.Book{
		ID:                  record.ID,
		Title:               record.Title,
		Author:              record.Author,
		PagesTotal:          record.PagesTotal,
		PagesRead:           record.PagesRead,
		Status:              bookdomain.Status(record.Status),
		Genres:              record.Genres,
		Rating:              bookdomain.Rating(record.Rating),
		RatingsHistory:      history,
		OverridePagesPerMin: record.OverridePagesPerMin,
		CoverURL:            record.CoverURL,
		Description:         record.Description,
		// The note path and slug are local concerns; regenerate them.
		Slug: slug.Make(record.Title),
	}
	var err error
	if book.DateStarted, err = parseTime(record.DateStarted); err != nil {
		return bookdomain.BookDocument{}, fmt.Errorf("book %q date_started: %w", record.ID, err)
	}
	if book.DateFinished, err = parseTime(record.DateFinished); err != nil {
		return bookdomain.BookDocument{}, fmt.Errorf("book %q date_finished: %w", record.ID, err)
	}
	if book.DateAbandoned, err = parseTime(record.DateAbandoned); err != nil {
		return bookdomain.BookDocument{}, fmt.Errorf("book %q date_abandoned: %w", record.ID, err)
	}
	if book.DueDate, err = parseDate(record.DueDate); err != nil {
		return bookdomain.BookDocument{}, fmt.Errorf("book %q due_date: %w", record.ID, err)
	}
	return bookdomain.BookDocument{Book: book, Body: record.Notes}, nil
}

func toSessionRecord(session sessiondomain.Session) sessionRecord {
	record := sessionRecord{
		ID:              session.ID,
		BookID:          session.BookID,
		BookTitle:       session.BookTitle,
		StartTime:       session.StartedAt,
		EndTime:         session.EndedAt,
		DurationMin:     session.DurationMin,
		Pages:           session.Pages,
		PagesPerMin:     session.PagesPerMin,
		ExcludeFromPace: session.ExcludeFromPace,
	}
	for _, segment := range session.Segments {
		seg := segmentRecord{StartTime: segment.StartedAt}
		if !segment.EndedAt.IsZero() {
			ended := segment.EndedAt
			seg.EndTime = &ended
		}
		record.Segments = append(record.Segments, seg)
	}
	return record
}

func fromSessionRecord(record sessionRecord) sessiondomain.Session {
	session := sessiondomain.Session{
		ID:              record.ID,
		BookID:          record.BookID,
		BookTitle:       record.BookTitle,
		StartedAt:       record.StartTime,
		EndedAt:         record.EndTime,
		DurationMin:     record.DurationMin,
		Pages:           record.Pages,
		PagesPerMin:     record.PagesPerMin,
		ExcludeFromPace: record.ExcludeFromPace,
	}
	for _, seg := range record.Segments {
		segment := sessiondomain.Segment{StartedAt: seg.StartTime}
		if seg.EndTime != nil {
			segment.EndedAt = *seg.EndTime
		}
		session.Segments = append(session.Segments, segment)
	}
	return session
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}
