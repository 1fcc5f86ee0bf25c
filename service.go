package normdoc

import "context"

// DocumentService is the query API over the document site.
type DocumentService interface {
	// ListDocuments returns one page of the category's listing.
	// Returns EINVALID for an unknown category key.
	ListDocuments(ctx context.Context, category string, p Pagination) (*DocumentPage, error)

	// FindDocument fetches and extracts a single document page.
	// Returns EINVALID if rawURL is empty or outside the site origin;
	// no upstream request is made in that case.
	FindDocument(ctx context.Context, rawURL string) (*DocumentDetail, error)

	// SearchDocuments returns summaries whose title contains the query,
	// case-insensitively. Sources that fail are skipped.
	SearchDocuments(ctx context.Context, q SearchQuery) (*SearchResult, error)

	// Categories returns the supported categories in display order.
	Categories() []Category
}

// DocumentWriter persists a document detail record.
type DocumentWriter interface {
	CreateDocument(ctx context.Context, doc *DocumentDetail) error
}

