package in

import (
	"context"

	"shelflife/internal/modules/archive/dto"
)

type Usecase interface {
	Export(ctx context.Context, path string) (dto.ExportOutput, error)
	// Import replaces all local state with the archive at path, drops
	// any active session and rebuilds the book index.
	Import(ctx context.Context, path string) (dto.ImportOutput, error)
}
