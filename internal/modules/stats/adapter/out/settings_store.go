package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	statsout "shelflife/internal/modules/stats/port/out"
)

type settingsFile struct {
	BaselineWPM *float64 `json:"baselineWpm,omitempty"`
}

// FileSettingsStore keeps reader preferences in a small JSON file next
// to the other state files. A missing file just means defaults.
type FileSettingsStore struct {
	path string
}

func NewFileSettingsStore(path string) statsout.SettingsStore {
	return &FileSettingsStore{path: path}
}

func (s *FileSettingsStore) BaselineWPM(_ context.Context) (float64, bool, error) {
	settings, err := s.load()
	if err != nil {
		return 0, false, err
	}
	if settings.BaselineWPM == nil {
		return 0, false, nil
	}
	return *settings.BaselineWPM, true, nil
}

func (s *FileSettingsStore) SaveBaselineWPM(ctx context.Context, value float64) error {
	settings, err := s.load()
	if err != nil {
		return err
	}
	settings.BaselineWPM = &value
	return s.save(settings)
}

func (s *FileSettingsStore) ClearBaselineWPM(ctx context.Context) error {
	settings, err := s.load()
	if err != nil {
		return err
	}
	settings.BaselineWPM = nil
	return s.save(settings)
}

func (s *FileSettingsStore) load() (settingsFile, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return settingsFile{}, nil
		}
		return settingsFile{}, fmt.Errorf("read settings: %w", err)
	}
	settings := settingsFile{}
	if err := json.Unmarshal(payload, &settings); err != nil {
		return settingsFile{}, fmt.Errorf("decode settings: %w", err)
	}
	return settings, nil
}

func (s *FileSettingsStore) save(settings settingsFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	payload, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
