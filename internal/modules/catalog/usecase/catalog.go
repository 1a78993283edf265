package usecase

import (
	"context"

	"shelflife/internal/modules/catalog/domain"
	"shelflife/internal/modules/catalog/dto"
	catalogin "shelflife/internal/modules/catalog/port/in"
	"shelflife/internal/modules/catalog/service"
)

type Interactor struct {
	svc *service.CatalogService
}

var _ catalogin.Usecase = (*Interactor)(nil)

func NewInteractor(svc *service.CatalogService) *Interactor {
	return &Interactor{svc: svc}
}

func (i *Interactor) Search(ctx context.Context, query string) ([]dto.ResultOutput, error) {
	results, err := i.svc.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	outputs := make([]dto.ResultOutput, 0, len(results))
	for _, result := range results {
		outputs = append(outputs, toOutput(result))
	}
	return outputs, nil
}

func (i *Interactor) Describe(ctx context.Context, query, key string) (dto.DetailOutput, error) {
	result, detail, err := i.svc.Describe(ctx, query, key)
	if err != nil {
		return dto.DetailOutput{}, err
	}
	return dto.DetailOutput{
		ResultOutput: toOutput(result),
		Description:  detail.Description,
		PagesTotal:   detail.PagesTotal,
	}, nil
}

func toOutput(result domain.SearchResult) dto.ResultOutput {
	return dto.ResultOutput{
		Key:              result.Key,
		Title:            result.Title,
		Author:           result.Author,
		FirstPublishYear: result.FirstPublishYear,
		CoverURL:         result.CoverURL,
		ISBN:             result.ISBN,
		Subjects:         result.Subjects,
	}
}
