package in

import (
	"context"

	catalogdto "shelflife/internal/modules/catalog/dto"
	catalogin "shelflife/internal/modules/catalog/port/in"
)

type CLIHandler struct {
	usecase catalogin.Usecase
}

func NewCLIHandler(usecase catalogin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Search(ctx context.Context, query string) ([]catalogdto.ResultOutput, error) {
	return h.usecase.Search(ctx, query)
}

func (h CLIHandler) Describe(ctx context.Context, query, key string) (catalogdto.DetailOutput, error) {
	return h.usecase.Describe(ctx, query, key)
}
