package mock

import "github.com/fwojciec/normdoc"

var _ normdoc.ListingExtractor = (*ListingExtractor)(nil)

// ListingExtractor is a mock implementation of normdoc.ListingExtractor.
type ListingExtractor struct {
	ExtractListingFn func(html string, baseURL string) ([]normdoc.DocumentSummary, error)
}

func (e *ListingExtractor) ExtractListing(html string, baseURL string) ([]normdoc.DocumentSummary, error) {
	return e.ExtractListingFn(html, baseURL)
}

var _ normdoc.DetailExtractor = (*DetailExtractor)(nil)

// DetailExtractor is a mock implementation of normdoc.DetailExtractor.
type DetailExtractor struct {
	ExtractDetailFn func(html string, sourceURL string) (*normdoc.DocumentDetail, error)
}

func (e *DetailExtractor) ExtractDetail(html string, sourceURL string) (*normdoc.DocumentDetail, error) {
	return e.ExtractDetailFn(html, sourceURL)
}
