package mock

import (
	"context"

	"github.com/fwojciec/normdoc"
)

var _ normdoc.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of normdoc.DocumentWriter.
type DocumentWriter struct {
	CreateDocumentFn func(ctx context.Context, doc *normdoc.DocumentDetail) error
}

func (w *DocumentWriter) CreateDocument(ctx context.Context, doc *normdoc.DocumentDetail) error {
	return w.CreateDocumentFn(ctx, doc)
}
