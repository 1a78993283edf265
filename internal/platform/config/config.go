package config

import (
	"fmt"
	"path/filepath"
)

// Config resolves every on-disk location from a single library root.
// Books and session notes live directly under the root; derived state
// (index database, active session, settings) hides in .shelflife.
type Config struct {
	LibraryPath  string
	StateDir     string
	DBPath       string
	ActivePath   string
	SettingsPath string
}

func New(libraryPath string) (Config, error) {
	if libraryPath == "" {
		return Config{}, fmt.Errorf("library path is required")
	}
	stateDir := filepath.Join(libraryPath, ".shelflife")
	return Config{
		LibraryPath:  libraryPath,
		StateDir:     stateDir,
		DBPath:       filepath.Join(stateDir, "shelflife.db"),
		ActivePath:   filepath.Join(stateDir, "active-session.json"),
		SettingsPath: filepath.Join(stateDir, "settings.json"),
	}, nil
}
