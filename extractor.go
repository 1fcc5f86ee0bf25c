package normdoc

// ListingExtractor turns a listing page into document summaries.
type ListingExtractor interface {
	// ExtractListing returns the summaries found in html in document order.
	// Relative links are resolved against baseURL; links leaving its host
	// are ignored. Malformed individual links are skipped silently; an
	// error means the page as a whole could not be processed.
	ExtractListing(html string, baseURL string) ([]DocumentSummary, error)
}

// DetailExtractor turns a document page into a detail record.
type DetailExtractor interface {
	// ExtractDetail derives title, content, outline and metadata from html.
	// Missing elements degrade to defaults; an error (EEXTRACT) means no
	// record could be produced at all.
	ExtractDetail(html string, sourceURL string) (*DocumentDetail, error)
}
