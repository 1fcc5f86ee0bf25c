package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/normdoc"
)

// Ensure LoggingDocumentService implements normdoc.DocumentService.
var _ normdoc.DocumentService = (*LoggingDocumentService)(nil)

// LoggingDocumentService wraps a DocumentService with logging of each query.
type LoggingDocumentService struct {
	next   normdoc.DocumentService
	logger *slog.Logger
}

// NewLoggingDocumentService creates a new LoggingDocumentService.
func NewLoggingDocumentService(next normdoc.DocumentService, logger *slog.Logger) *LoggingDocumentService {
	return &LoggingDocumentService{next: next, logger: logger}
}

func (s *LoggingDocumentService) ListDocuments(ctx context.Context, category string, p normdoc.Pagination) (page *normdoc.DocumentPage, err error) {
	defer func(begin time.Time) {
		var total, count int
		if page != nil {
			total, count = page.Total, len(page.Documents)
		}
		s.logger.Info("list documents",
			"type", category,
			"page", p.Page,
			"per_page", p.PerPage,
			"total", total,
			"count", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ListDocuments(ctx, category, p)
}

func (s *LoggingDocumentService) FindDocument(ctx context.Context, rawURL string) (doc *normdoc.DocumentDetail, err error) {
	defer func(begin time.Time) {
		var title string
		var sections int
		if doc != nil {
			title, sections = doc.Title, len(doc.Sections)
		}
		s.logger.Info("find document",
			"url", rawURL,
			"title", title,
			"sections", sections,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindDocument(ctx, rawURL)
}

func (s *LoggingDocumentService) SearchDocuments(ctx context.Context, q normdoc.SearchQuery) (res *normdoc.SearchResult, err error) {
	defer func(begin time.Time) {
		var count int
		if res != nil {
			count = res.Total
		}
		s.logger.Info("search documents",
			"query", q.Query,
			"type", q.Category,
			"count", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SearchDocuments(ctx, q)
}

func (s *LoggingDocumentService) Categories() []normdoc.Category {
	return s.next.Categories()
}
