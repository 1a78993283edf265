package usecase

import (
	"context"

	"shelflife/internal/modules/archive/dto"
	archivein "shelflife/internal/modules/archive/port/in"
	"shelflife/internal/modules/archive/service"
	bookin "shelflife/internal/modules/book/port/in"
	sessionout "shelflife/internal/modules/session/port/out"
)

type Interactor struct {
	svc         *service.ArchiveService
	books       bookin.Usecase
	activeStore sessionout.ActiveSessionStore
}

var _ archivein.Usecase = (*Interactor)(nil)

func NewInteractor(svc *service.ArchiveService, books bookin.Usecase, activeStore sessionout.ActiveSessionStore) *Interactor {
	return &Interactor{svc: svc, books: books, activeStore: activeStore}
}

func (i *Interactor) Export(ctx context.Context, path string) (dto.ExportOutput, error) {
	archive, err := i.svc.Export(ctx, path)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	return dto.ExportOutput{
		Path:       path,
		Books:      len(archive.Books),
		Sessions:   len(archive.Sessions),
		Genres:     len(archive.Genres),
		ExportDate: archive.ExportDate,
	}, nil
}

// Import replaces the library, then clears any in-flight session (its
// book may no longer exist) and rebuilds the index projection.
func (i *Interactor) Import(ctx context.Context, path string) (dto.ImportOutput, error) {
	archive, err := i.svc.Import(ctx, path)
	if err != nil {
		return dto.ImportOutput{}, err
	}
	if err := i.activeStore.ClearActive(ctx); err != nil {
		return dto.ImportOutput{}, err
	}
	if err := i.books.Reindex(ctx); err != nil {
		return dto.ImportOutput{}, err
	}
	return dto.ImportOutput{
		Books:    len(archive.Books),
		Sessions: len(archive.Sessions),
		Genres:   len(archive.Genres),
		Version:  archive.Version,
	}, nil
}
