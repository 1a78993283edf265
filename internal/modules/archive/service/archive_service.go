package service

import (
	"context"
	"fmt"

	"shelflife/internal/modules/archive/domain"
	archiveout "shelflife/internal/modules/archive/port/out"
	"shelflife/internal/platform/clock"
)

type ArchiveService struct {
	clock  clock.Clock
	reader archiveout.LibraryReader
	writer archiveout.LibraryWriter
	codec  archiveout.ArchiveCodec
}

func NewArchiveService(clock clock.Clock, reader archiveout.LibraryReader, writer archiveout.LibraryWriter, codec archiveout.ArchiveCodec) *ArchiveService {
	return &ArchiveService{clock: clock, reader: reader, writer: writer, codec: codec}
}

func (s *ArchiveService) Export(ctx context.Context, path string) (domain.Archive, error) {
	snapshot, err := s.reader.Snapshot(ctx)
	if err != nil {
		return domain.Archive{}, fmt.Errorf("snapshot library: %w", err)
	}
	archive := domain.New(snapshot.Books, snapshot.Sessions, s.clock.Now())
	if err := s.codec.Write(path, archive); err != nil {
		return domain.Archive{}, fmt.Errorf("write archive: %w", err)
	}
	return archive, nil
}

func (s *ArchiveService) Import(ctx context.Context, path string) (domain.Archive, error) {
	archive, err := s.codec.Read(path)
	if err != nil {
		return domain.Archive{}, fmt.Errorf("read archive: %w", err)
	}
	if err := archive.Validate(); err != nil {
		return domain.Archive{}, fmt.Errorf("validate archive: %w", err)
	}
	if err := s.writer.Replace(ctx, archive); err != nil {
		return domain.Archive{}, fmt.Errorf("replace library: %w", err)
	}
	return archive, nil
}
