package goquery

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/normdoc"
)

// ListingSelectors target the different shapes of document link containers
// found on listing pages. All of them are applied and their results merged.
var ListingSelectors = []string{
	`a[href*="/mega_doc/fire/"]`,
	`.doc-link`,
	`.document-link`,
	`td a[href*="/mega_doc/"]`,
	`tr a[href*="/mega_doc/"]`,
}

// Link filtering rules.
const (
	// DocumentNamespace must appear in every document link.
	DocumentNamespace = "/mega_doc/"

	// IndexPageSuffix marks listing index pages, which are not documents.
	IndexPageSuffix = "_0.html"

	// MinSummaryTitleLength is the shortest title, in characters, of a
	// document link. Shorter links are decorative.
	MinSummaryTitleLength = 5
)

// Ensure ListingExtractor implements normdoc.ListingExtractor at compile time.
var _ normdoc.ListingExtractor = (*ListingExtractor)(nil)

// ListingExtractor converts listing pages into document summaries.
type ListingExtractor struct {
	// Selectors are applied in order; see ListingSelectors.
	Selectors []string
}

// NewListingExtractor creates a ListingExtractor using ListingSelectors.
func NewListingExtractor() *ListingExtractor {
	return &ListingExtractor{Selectors: ListingSelectors}
}

// ExtractListing returns the summaries found in html, ordered by selector
// and then by document order, without duplicates. Links are resolved against
// baseURL and must stay on its host.
func (e *ListingExtractor) ExtractListing(html string, baseURL string) ([]normdoc.DocumentSummary, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, normdoc.Errorf(normdoc.EINVALID, "invalid base URL %q", baseURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, normdoc.Errorf(normdoc.EEXTRACT, "failed to parse listing: %w", err).WithURL(baseURL)
	}

	seen := make(map[normdoc.DocumentSummary]bool)
	docs := make([]normdoc.DocumentSummary, 0)

	for _, selector := range e.Selectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			summary, ok := summarize(base, sel)
			if !ok || seen[summary] {
				return
			}
			seen[summary] = true
			docs = append(docs, summary)
		})
	}

	return docs, nil
}

// summarize converts one candidate link. It reports false for links that are
// not documents; such links are skipped, never treated as failures.
func summarize(base *url.URL, sel *goquery.Selection) (normdoc.DocumentSummary, bool) {
	href, exists := sel.Attr("href")
	href = strings.TrimSpace(href)
	if !exists || href == "" {
		return normdoc.DocumentSummary{}, false
	}
	if !strings.Contains(href, DocumentNamespace) || strings.HasSuffix(href, IndexPageSuffix) {
		return normdoc.DocumentSummary{}, false
	}

	ref, err := url.Parse(href)
	if err != nil {
		return normdoc.DocumentSummary{}, false
	}
	resolved := base.ResolveReference(ref)
	if !strings.EqualFold(resolved.Host, base.Host) {
		return normdoc.DocumentSummary{}, false
	}
	// Absolute links on the same host may use another scheme.
	resolved.Scheme = base.Scheme

	title := normalizeSpace(sel.Text())
	if title == "" {
		title = normalizeSpace(sel.Parent().Text())
	}
	if utf8.RuneCountInString(title) < MinSummaryTitleLength {
		return normdoc.DocumentSummary{}, false
	}

	return normdoc.DocumentSummary{
		Title:       title,
		URL:         resolved.String(),
		Type:        normdoc.ClassifyType(href),
		Number:      normdoc.MatchSummaryNumber(title, href),
		RelativeURL: href,
	}, true
}
