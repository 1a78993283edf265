package out

import (
	"context"

	"shelflife/internal/modules/catalog/domain"
)

// CatalogGateway talks to the remote book catalog. WorkDetail takes
// the whole search result because the page-count lookup prefers the
// edition behind the result's ISBN before falling back to the work's
// edition list.
type CatalogGateway interface {
	Search(ctx context.Context, query string) ([]domain.SearchResult, error)
	WorkDetail(ctx context.Context, result domain.SearchResult) (domain.WorkDetail, error)
}
