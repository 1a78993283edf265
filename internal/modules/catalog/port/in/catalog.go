package in

import (
	"context"

	"shelflife/internal/modules/catalog/dto"
)

type Usecase interface {
	Search(ctx context.Context, query string) ([]dto.ResultOutput, error)
	// Describe re-runs the search and enriches the result whose work
	// key matches, so the CLI can show details without carrying state
	// between invocations.
	Describe(ctx context.Context, query, key string) (dto.DetailOutput, error)
}
