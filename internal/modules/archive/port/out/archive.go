package out

import (
	"context"

	"shelflife/internal/modules/archive/domain"
)

// LibraryReader gathers the whole local state for an export.
type LibraryReader interface {
	Snapshot(ctx context.Context) (domain.Archive, error)
}

// LibraryWriter replaces the whole local state with an imported
// archive. Implementations wipe existing notes first so books deleted
// since the export do not linger.
type LibraryWriter interface {
	Replace(ctx context.Context, archive domain.Archive) error
}

// ArchiveCodec reads and writes the archive file format.
type ArchiveCodec interface {
	Write(path string, archive domain.Archive) error
	Read(path string) (domain.Archive, error)
}
