package mock

import (
	"context"

	"github.com/fwojciec/normdoc"
)

var _ normdoc.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of normdoc.DocumentService.
type DocumentService struct {
	ListDocumentsFn   func(ctx context.Context, category string, p normdoc.Pagination) (*normdoc.DocumentPage, error)
	FindDocumentFn    func(ctx context.Context, rawURL string) (*normdoc.DocumentDetail, error)
	SearchDocumentsFn func(ctx context.Context, q normdoc.SearchQuery) (*normdoc.SearchResult, error)
	CategoriesFn      func() []normdoc.Category
}

func (s *DocumentService) ListDocuments(ctx context.Context, category string, p normdoc.Pagination) (*normdoc.DocumentPage, error) {
	return s.ListDocumentsFn(ctx, category, p)
}

func (s *DocumentService) FindDocument(ctx context.Context, rawURL string) (*normdoc.DocumentDetail, error) {
	return s.FindDocumentFn(ctx, rawURL)
}

func (s *DocumentService) SearchDocuments(ctx context.Context, q normdoc.SearchQuery) (*normdoc.SearchResult, error) {
	return s.SearchDocumentsFn(ctx, q)
}

func (s *DocumentService) Categories() []normdoc.Category {
	return s.CategoriesFn()
}
