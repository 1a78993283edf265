package service

import (
	"context"
	"strings"

	"shelflife/internal/modules/catalog/domain"
	catalogout "shelflife/internal/modules/catalog/port/out"
	apperrors "shelflife/internal/platform/errors"
)

type CatalogService struct {
	gateway catalogout.CatalogGateway
}

func NewCatalogService(gateway catalogout.CatalogGateway) *CatalogService {
	return &CatalogService{gateway: gateway}
}

func (s *CatalogService) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.ErrInvalidInput
	}
	return s.gateway.Search(ctx, query)
}

// Describe finds the result with the given work key in a fresh search
// and fetches its details.
func (s *CatalogService) Describe(ctx context.Context, query, key string) (domain.SearchResult, domain.WorkDetail, error) {
	results, err := s.Search(ctx, query)
	if err != nil {
		return domain.SearchResult{}, domain.WorkDetail{}, err
	}
	for _, result := range results {
		if result.Key != key {
			continue
		}
		detail, err := s.gateway.WorkDetail(ctx, result)
		if err != nil {
			return domain.SearchResult{}, domain.WorkDetail{}, err
		}
		return result, detail, nil
	}
	return domain.SearchResult{}, domain.WorkDetail{}, apperrors.ErrNotFound
}
