package dto

import "time"

type ExportOutput struct {
	Path       string
	Books      int
	Sessions   int
	Genres     int
	ExportDate time.Time
}

type ImportOutput struct {
	Books    int
	Sessions int
	Genres   int
	// Version is the format version declared by the imported file.
	Version string
}
