package domain

// SearchResult is one catalog match. Key identifies the work for a
// follow-up detail lookup; ISBN is the first edition ISBN when known.
type SearchResult struct {
	Key              string
	Title            string
	Author           string
	FirstPublishYear int
	CoverURL         string
	ISBN             string
	Subjects         []string
}

// WorkDetail is the extra information fetched for a selected result.
// PagesTotal is 0 when no edition reports a page count.
type WorkDetail struct {
	Description string
	PagesTotal  int
}
