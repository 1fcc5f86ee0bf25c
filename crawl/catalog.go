// Package crawl fetches and extracts document site pages on demand. It holds
// the retry and rate limit policy for upstream requests and the Catalog
// that answers document queries.
package crawl

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/fwojciec/normdoc"
	"golang.org/x/sync/singleflight"
)

// Ensure Catalog implements normdoc.DocumentService at compile time.
var _ normdoc.DocumentService = (*Catalog)(nil)

// Catalog implements normdoc.DocumentService by fetching listing and detail
// pages from the document site for every call. Nothing is cached; identical
// listing fetches that overlap in time share one upstream request.
type Catalog struct {
	Fetcher  normdoc.Fetcher
	Listings normdoc.ListingExtractor
	Details  normdoc.DetailExtractor

	// Converter, if set, fills DocumentDetail.ContentMarkdown.
	Converter normdoc.Converter

	// Origin is the site every upstream URL must belong to.
	// Defaults to normdoc.DefaultOrigin.
	Origin string

	// Available lists the supported categories.
	// Defaults to normdoc.DefaultCategories.
	Available []normdoc.Category

	// Logger receives search source failures. Nil discards them.
	Logger *slog.Logger

	group singleflight.Group
}

// NewCatalog creates a Catalog over the default origin and categories.
func NewCatalog(fetcher normdoc.Fetcher, listings normdoc.ListingExtractor, details normdoc.DetailExtractor) *Catalog {
	return &Catalog{
		Fetcher:   fetcher,
		Listings:  listings,
		Details:   details,
		Origin:    normdoc.DefaultOrigin,
		Available: normdoc.DefaultCategories,
	}
}

// Categories returns the supported categories in display order.
func (c *Catalog) Categories() []normdoc.Category {
	if c.Available == nil {
		return slices.Clone(normdoc.DefaultCategories)
	}
	return slices.Clone(c.Available)
}

// ListDocuments fetches the category's listing and returns the requested page.
func (c *Catalog) ListDocuments(ctx context.Context, category string, p normdoc.Pagination) (*normdoc.DocumentPage, error) {
	cat, ok := normdoc.FindCategory(c.Categories(), category)
	if !ok {
		return nil, normdoc.Errorf(normdoc.EINVALID, "unsupported document type %q", category)
	}

	docs, err := c.listing(ctx, cat)
	if err != nil {
		return nil, err
	}
	return normdoc.NewDocumentPage(docs, p), nil
}

// FindDocument fetches and extracts one document page. The URL is checked
// against the origin before any request is made.
func (c *Catalog) FindDocument(ctx context.Context, rawURL string) (*normdoc.DocumentDetail, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, normdoc.Errorf(normdoc.EINVALID, "url parameter is required")
	}
	if !normdoc.SameOrigin(c.origin(), rawURL) {
		return nil, normdoc.Errorf(normdoc.EINVALID, "url must belong to %s", c.origin()).WithURL(rawURL)
	}

	html, err := c.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, withCode(err, normdoc.EFETCH, "failed to fetch document", rawURL)
	}

	doc, err := c.Details.ExtractDetail(html, rawURL)
	if err != nil {
		return nil, withCode(err, normdoc.EEXTRACT, "failed to extract document", rawURL)
	}

	if c.Converter != nil && doc.ContentHTML != "" {
		md, err := c.Converter.Convert(doc.ContentHTML)
		if err != nil {
			c.logger().Warn("markdown conversion failed", "url", rawURL, "err", err)
		} else {
			doc.ContentMarkdown = md
		}
	}

	return doc, nil
}

// SearchDocuments scans the listings in scope one after another and returns
// the summaries whose title contains the query, ignoring case.
//
// A listing that cannot be fetched or extracted is logged and left out of
// the result. Only when every listing fails is the last failure returned.
func (c *Catalog) SearchDocuments(ctx context.Context, q normdoc.SearchQuery) (*normdoc.SearchResult, error) {
	query := strings.TrimSpace(q.Query)
	if query == "" {
		return nil, normdoc.Errorf(normdoc.EINVALID, "query parameter is required")
	}

	scope := q.Category
	if scope == "" {
		scope = normdoc.CategoryAll
	}

	sources := c.Categories()
	if scope != normdoc.CategoryAll {
		cat, ok := normdoc.FindCategory(sources, scope)
		if !ok {
			return nil, normdoc.Errorf(normdoc.EINVALID, "unsupported document type %q", scope)
		}
		sources = []normdoc.Category{cat}
	}

	needle := strings.ToLower(query)
	matches := make([]normdoc.DocumentSummary, 0)

	var lastErr error
	failed := 0
	for _, cat := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		docs, err := c.listing(ctx, cat)
		if err != nil {
			c.logger().Warn("search source failed", "category", cat.Key, "err", err)
			lastErr = err
			failed++
			continue
		}

		for _, d := range docs {
			if strings.Contains(strings.ToLower(d.Title), needle) {
				matches = append(matches, d)
			}
		}
	}

	if failed > 0 && failed == len(sources) {
		return nil, lastErr
	}

	return &normdoc.SearchResult{
		Documents: matches,
		Query:     query,
		Category:  scope,
		Total:     len(matches),
	}, nil
}

// listing fetches and extracts a category's listing page. Concurrent callers
// share one fetch, which is detached from any single caller's cancellation;
// each caller stops waiting when its own ctx ends. The returned slice may be
// shared and must not be modified.
func (c *Catalog) listing(ctx context.Context, cat normdoc.Category) ([]normdoc.DocumentSummary, error) {
	listingURL := cat.ListingURL(c.origin())
	shared := context.WithoutCancel(ctx)

	ch := c.group.DoChan(listingURL, func() (any, error) {
		html, err := c.Fetcher.Fetch(shared, listingURL)
		if err != nil {
			return nil, withCode(err, normdoc.EFETCH, "failed to fetch listing", listingURL)
		}

		docs, err := c.Listings.ExtractListing(html, c.origin())
		if err != nil {
			return nil, withCode(err, normdoc.EEXTRACT, "failed to extract listing", listingURL)
		}
		return docs, nil
	})

	select {
	case <-ctx.Done():
		return nil, normdoc.Errorf(normdoc.EFETCH, "failed to fetch listing: %w", ctx.Err()).WithURL(listingURL)
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]normdoc.DocumentSummary), nil
	}
}

func (c *Catalog) origin() string {
	if c.Origin == "" {
		return normdoc.DefaultOrigin
	}
	return c.Origin
}

func (c *Catalog) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// withCode keeps application errors as they are and classifies anything else
// under code.
func withCode(err error, code, msg, url string) error {
	if normdoc.ErrorCode(err) != normdoc.EINTERNAL {
		return err
	}
	return normdoc.Errorf(code, "%s: %w", msg, err).WithURL(url)
}
