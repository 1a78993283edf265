package dto

type ResultOutput struct {
	Key              string
	Title            string
	Author           string
	FirstPublishYear int
	CoverURL         string
	ISBN             string
	Subjects         []string
}

type DetailOutput struct {
	ResultOutput
	Description string
	PagesTotal  int
}
