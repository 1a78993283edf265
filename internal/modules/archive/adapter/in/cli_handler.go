package in

import (
	"context"

	archivedto "shelflife/internal/modules/archive/dto"
	archivein "shelflife/internal/modules/archive/port/in"
)

type CLIHandler struct {
	usecase archivein.Usecase
}

func NewCLIHandler(usecase archivein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Export(ctx context.Context, path string) (archivedto.ExportOutput, error) {
	return h.usecase.Export(ctx, path)
}

func (h CLIHandler) Import(ctx context.Context, path string) (archivedto.ImportOutput, error) {
	return h.usecase.Import(ctx, path)
}
