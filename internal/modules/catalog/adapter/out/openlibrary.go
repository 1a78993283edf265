package out

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shelflife/internal/modules/catalog/domain"
	catalogout "shelflife/internal/modules/catalog/port/out"
)

const (
	defaultBaseURL  = "https://openlibrary.org"
	defaultCoverURL = "https://covers.openlibrary.org"

	searchLimit   = 10
	subjectLimit  = 10
	editionsLimit = 5
)

// OpenLibraryGateway queries the public OpenLibrary API. Both base
// URLs are injectable for tests.
type OpenLibraryGateway struct {
	client   *http.Client
	baseURL  string
	coverURL string
}

func NewOpenLibraryGateway() catalogout.CatalogGateway {
	return &OpenLibraryGateway{
		client:   &http.Client{Timeout: 15 * time.Second},
		baseURL:  defaultBaseURL,
		coverURL: defaultCoverURL,
	}
}

// NewOpenLibraryGatewayWithBase points the gateway at a different API
// host; tests hand it an httptest server.
func NewOpenLibraryGatewayWithBase(client *http.Client, baseURL, coverURL string) catalogout.CatalogGateway {
	return &OpenLibraryGateway{client: client, baseURL: baseURL, coverURL: coverURL}
}

type searchResponse struct {
	Docs []searchDoc `json:"docs"`
}

type searchDoc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
	CoverID          int      `json:"cover_i"`
	ISBN             []string `json:"isbn"`
	Subject          []string `json:"subject"`
}

func (g *OpenLibraryGateway) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	endpoint := fmt.Sprintf("%s/search.json?q=%s&limit=%d", g.baseURL, url.QueryEscape(query), searchLimit)
	response := searchResponse{}
	if err := g.getJSON(ctx, endpoint, &response); err != nil {
		return nil, fmt.Errorf("search catalog: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(response.Docs))
	for _, doc := range response.Docs {
		result := domain.SearchResult{
			Key:              doc.Key,
			Title:            doc.Title,
			Author:           "Unknown Author",
			FirstPublishYear: doc.FirstPublishYear,
		}
		if len(doc.AuthorName) > 0 {
			result.Author = doc.AuthorName[0]
		}
		if doc.CoverID > 0 {
			result.CoverURL = fmt.Sprintf("%s/b/id/%d-M.jpg", g.coverURL, doc.CoverID)
		}
		if len(doc.ISBN) > 0 {
			result.ISBN = doc.ISBN[0]
		}
		subjects := doc.Subject
		if len(subjects) > subjectLimit {
			subjects = subjects[:subjectLimit]
		}
		result.Subjects = subjects
		results = append(results, result)
	}
	return results, nil
}

type workResponse struct {
	Key         string          `json:"key"`
	Description json.RawMessage `json:"description"`
}

type editionResponse struct {
	NumberOfPages int `json:"number_of_pages"`
}

type editionsResponse struct {
	Entries []editionResponse `json:"entries"`
}

// WorkDetail fetches the work's description, then looks for a page
// count: first on the edition behind the result's ISBN, then on the
// work's first few editions. Missing page data is not an error.
func (g *OpenLibraryGateway) WorkDetail(ctx context.Context, result domain.SearchResult) (domain.WorkDetail, error) {
	workKey := strings.TrimPrefix(result.Key, "/works/")
	work := workResponse{}
	if err := g.getJSON(ctx, fmt.Sprintf("%s/works/%s.json", g.baseURL, workKey), &work); err != nil {
		return domain.WorkDetail{}, fmt.Errorf("fetch work: %w", err)
	}

	detail := domain.WorkDetail{Description: decodeDescription(work.Description)}

	if result.ISBN != "" {
		edition := editionResponse{}
		err := g.getJSON(ctx, fmt.Sprintf("%s/isbn/%s.json", g.baseURL, result.ISBN), &edition)
		if err == nil && edition.NumberOfPages > 0 {
			detail.PagesTotal = edition.NumberOfPages
			return detail, nil
		}
	}

	if work.Key != "" {
		editions := editionsResponse{}
		endpoint := fmt.Sprintf("%s%s/editions.json?limit=%d", g.baseURL, work.Key, editionsLimit)
		if err := g.getJSON(ctx, endpoint, &editions); err == nil {
			for _, edition := range editions.Entries {
				if edition.NumberOfPages > 0 {
					detail.PagesTotal = edition.NumberOfPages
					break
				}
			}
		}
	}
	return detail, nil
}

func (g *OpenLibraryGateway) getJSON(ctx context.Context, endpoint string, target any) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	request.Header.Set("Accept", "application/json")

	response, err := g.client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", response.Status)
	}
	return json.NewDecoder(response.Body).Decode(target)
}

// decodeDescription handles the two shapes OpenLibrary uses: a plain
// string or a {"type", "value"} object.
func decodeDescription(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain
	}
	var typed struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &typed); err == nil {
		return typed.Value
	}
	return ""
}
