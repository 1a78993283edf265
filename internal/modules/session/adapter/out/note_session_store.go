package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"shelflife/internal/modules/session/domain"
	sessionout "shelflife/internal/modules/session/port/out"
	"shelflife/internal/platform/markdown"
	"shelflife/internal/platform/slug"
)

// NoteSessionStore renders finalized sessions as markdown notes under
// <library>/sessions/<year>/<month>/<day>. Segment boundaries land in
// the frontmatter, so pace history survives round trips through the
// notes alone.
type NoteSessionStore struct {
	libraryPath string
}

func NewNoteSessionStore(libraryPath string) sessionout.SessionStore {
	return &NoteSessionStore{libraryPath: libraryPath}
}

func (s *NoteSessionStore) Save(_ context.Context, session domain.Session) (string, error) {
	date := session.StartedAt
	dir := filepath.Join(s.libraryPath, "sessions", date.Format("2006"), date.Format("01"), date.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create session dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s.md", date.Format("150405"), slug.Make(session.BookTitle))
	path := filepath.Join(dir, name)

	segments := make([]map[string]any, 0, len(session.Segments))
	for _, segment := range session.Segments {
		segments = append(segments, map[string]any{
			"started_at": segment.StartedAt.Format(time.RFC3339),
			"ended_at":   segment.EndedAt.Format(time.RFC3339),
		})
	}
	meta := map[string]any{
		"schema_version":    domain.SchemaVersion,
		"id":                session.ID,
		"book_id":           session.BookID,
		"book_title":        session.BookTitle,
		"started_at":        session.StartedAt.Format(time.RFC3339),
		"ended_at":          session.EndedAt.Format(time.RFC3339),
		"duration_minutes":  session.DurationMin,
		"pages":             session.Pages,
		"pages_per_min":     session.PagesPerMin,
		"exclude_from_pace": session.ExcludeFromPace,
		"segments":          segments,
	}
	body := fmt.Sprintf("# Session %s\n\n- Book: [[%s]]\n- Duration: %.1f minutes\n- Pages: %d\n",
		session.ID, session.BookTitle, session.DurationMin, session.Pages)
	rendered, err := markdown.RenderFrontmatter(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write session note: %w", err)
	}
	return path, nil
}

func (s *NoteSessionStore) ListByBook(ctx context.Context, bookID string) ([]domain.Session, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Session, 0, len(all))
	for _, session := range all {
		if session.BookID == bookID {
			out = append(out, session)
		}
	}
	return out, nil
}

func (s *NoteSessionStore) List(_ context.Context) ([]domain.Session, error) {
	glob := filepath.Join(s.libraryPath, "sessions", "*", "*", "*", "*.md")
	matches, err := filepath.Glob(glob)
	if err != nil {
		return nil, fmt.Errorf("glob session notes: %w", err)
	}
	sort.Strings(matches)

	out := make([]domain.Session, 0, len(matches))
	for _, path := range matches {
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("read %s: %w", path, readErr)
		}
		meta, _, splitErr := markdown.SplitFrontmatter(string(content))
		if splitErr != nil {
			return nil, fmt.Errorf("parse %s: %w", path, splitErr)
		}
		out = append(out, fromFrontmatter(meta))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })
	return out, nil
}

func fromFrontmatter(meta map[string]any) domain.Session {
	session := domain.Session{
		ID:              markdown.Str(meta["id"]),
		BookID:          markdown.Str(meta["book_id"]),
		BookTitle:       markdown.Str(meta["book_title"]),
		DurationMin:     markdown.Float(meta["duration_minutes"]),
		Pages:           markdown.Int(meta["pages"]),
		PagesPerMin:     markdown.Float(meta["pages_per_min"]),
		ExcludeFromPace: markdown.Bool(meta["exclude_from_pace"]),
	}
	session.StartedAt, _ = time.Parse(time.RFC3339, markdown.Str(meta["started_at"]))
	session.EndedAt, _ = time.Parse(time.RFC3339, markdown.Str(meta["ended_at"]))
	if raw, ok := meta["segments"].([]any); ok {
		for _, item := range raw {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			segment := domain.Segment{}
			segment.StartedAt, _ = time.Parse(time.RFC3339, markdown.Str(entry["started_at"]))
			segment.EndedAt, _ = time.Parse(time.RFC3339, markdown.Str(entry["ended_at"]))
			session.Segments = append(session.Segments, segment)
		}
	}
	return session
}
